package services

import (
	"fmt"
	"sort"
	"strings"
)

// Cevap haritasında ad/e-posta bulunamazsa kullanılan yer tutucular.
const (
	UnknownName = "Unknown"
	NoEmail     = "No email"
)

// Öncelikli tam eşleşme anahtarları. Sıra önemlidir.
var (
	exactNameKeys  = []string{"name", "fullName", "full_name", "adSoyad", "ad_soyad"}
	exactEmailKeys = []string{"email", "e_mail", "eMail", "eposta", "e_posta"}
)

// ExtractName cevap haritasından görünen adı çıkarır.
// Arama sırası: tam anahtarlar -> firstName+lastName birleşimi ->
// "name" içeren özel soru anahtarları (alfabetik, deterministik) -> Unknown.
func ExtractName(answers map[string]interface{}) string {
	if v := firstExactMatch(answers, exactNameKeys); v != "" {
		return v
	}

	first := stringValue(answers["firstName"])
	if first == "" {
		first = stringValue(answers["first_name"])
	}
	last := stringValue(answers["lastName"])
	if last == "" {
		last = stringValue(answers["last_name"])
	}
	if first != "" || last != "" {
		return strings.TrimSpace(first + " " + last)
	}

	if v := firstPatternMatch(answers, "name"); v != "" {
		return v
	}
	return UnknownName
}

// ExtractEmail cevap haritasından e-posta adresini çıkarır.
// Arama sırası: tam anahtarlar -> "mail"/"eposta" içeren özel soru anahtarları
// (alfabetik, deterministik) -> No email.
func ExtractEmail(answers map[string]interface{}) string {
	if v := firstExactMatch(answers, exactEmailKeys); v != "" {
		return v
	}
	if v := firstPatternMatch(answers, "mail"); v != "" {
		return v
	}
	if v := firstPatternMatch(answers, "eposta"); v != "" {
		return v
	}
	return NoEmail
}

func firstExactMatch(answers map[string]interface{}, keys []string) string {
	for _, key := range keys {
		if v := stringValue(answers[key]); v != "" {
			return v
		}
	}
	return ""
}

// firstPatternMatch anahtarları sıralayarak gezer; map sırası rastgele olduğu
// için aynı girdi her zaman aynı sonucu verir.
func firstPatternMatch(answers map[string]interface{}, pattern string) string {
	keys := make([]string, 0, len(answers))
	for key := range answers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if strings.Contains(strings.ToLower(key), pattern) {
			if v := stringValue(answers[key]); v != "" {
				return v
			}
		}
	}
	return ""
}

func stringValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		return ""
	}
}
