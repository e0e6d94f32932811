package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractNameExactKeys(t *testing.T) {
	cases := map[string]map[string]interface{}{
		"name":      {"name": "Ali Veli"},
		"fullName":  {"fullName": "Ali Veli"},
		"full_name": {"full_name": "Ali Veli"},
		"adSoyad":   {"adSoyad": "Ali Veli"},
		"ad_soyad":  {"ad_soyad": "Ali Veli"},
	}
	for key, answers := range cases {
		assert.Equal(t, "Ali Veli", ExtractName(answers), "anahtar: %s", key)
	}
}

func TestExtractNameFirstLastPair(t *testing.T) {
	assert.Equal(t, "Jane Doe", ExtractName(map[string]interface{}{
		"firstName": "Jane", "lastName": "Doe",
	}))
	assert.Equal(t, "Jane Doe", ExtractName(map[string]interface{}{
		"first_name": "Jane", "last_name": "Doe",
	}))
	// Tek parça da kabul edilir.
	assert.Equal(t, "Jane", ExtractName(map[string]interface{}{"first_name": "Jane"}))
}

func TestExtractNamePatternFallback(t *testing.T) {
	// Organizatörün ürettiği anahtarlar "name" içeriyorsa yakalanır.
	assert.Equal(t, "Jane Doe", ExtractName(map[string]interface{}{
		"question_name_42": "Jane Doe",
		"email":            "jane@x.com",
	}))
}

func TestExtractNameDeterministicAcrossKeys(t *testing.T) {
	// Birden fazla desen adayı varsa anahtarlar sıralanır; sonuç her
	// çalıştırmada aynıdır.
	answers := map[string]interface{}{
		"b_name_field": "İkinci",
		"a_name_field": "Birinci",
	}
	for i := 0; i < 10; i++ {
		assert.Equal(t, "Birinci", ExtractName(answers))
	}
}

func TestExtractNameUnknown(t *testing.T) {
	assert.Equal(t, UnknownName, ExtractName(nil))
	assert.Equal(t, UnknownName, ExtractName(map[string]interface{}{"phone": "555"}))
	assert.Equal(t, UnknownName, ExtractName(map[string]interface{}{"name": ""}))
	assert.Equal(t, UnknownName, ExtractName(map[string]interface{}{"name": 42}))
}

func TestExtractEmailExactAndPattern(t *testing.T) {
	assert.Equal(t, "a@b.com", ExtractEmail(map[string]interface{}{"email": "a@b.com"}))
	assert.Equal(t, "a@b.com", ExtractEmail(map[string]interface{}{"e_mail": "a@b.com"}))
	assert.Equal(t, "a@b.com", ExtractEmail(map[string]interface{}{"eposta": "a@b.com"}))
	assert.Equal(t, "a@b.com", ExtractEmail(map[string]interface{}{"contact_mail_1": "a@b.com"}))
}

func TestExtractEmailMissing(t *testing.T) {
	assert.Equal(t, NoEmail, ExtractEmail(nil))
	assert.Equal(t, NoEmail, ExtractEmail(map[string]interface{}{"name": "Ali"}))
}
