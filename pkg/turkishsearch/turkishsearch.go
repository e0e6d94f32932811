package turkishsearch

import (
	"strings"
	"unicode"
)

// Fold Türkçe büyük/küçük harf kurallarına göre küçültür (İ -> i, I -> ı).
func Fold(s string) string {
	return strings.ToLowerSpecial(unicode.TurkishCase, s)
}

// SQLFilter verilen sütun için büyük/küçük harf duyarsız LIKE parçası üretir.
// Türkçe karakterler nedeniyle LOWER yerine parametre tarafında Fold kullanılır;
// sütun tarafında LOWER yeterlidir çünkü saklanan veri zaten normalize edilmez.
func SQLFilter(column, term string) (string, []interface{}) {
	pattern := "%" + Fold(strings.TrimSpace(term)) + "%"
	return "LOWER(" + column + ") LIKE ?", []interface{}{pattern}
}
