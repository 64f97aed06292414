package language_test

import (
	"testing"

	"github.com/svera/epubsearch/internal/language"
)

func TestNormalize(t *testing.T) {
	for _, tcase := range []struct {
		code     string
		expected string
	}{
		{"ru", "ru"},
		{"ru-RU", "ru"},
		{"en_GB", "en"},
		{" es ", "es"},
		{"pt-BR", "pt"},
	} {
		got, err := language.Normalize(tcase.code)
		if err != nil {
			t.Errorf("Unexpected error normalising '%s': %s", tcase.code, err)
			continue
		}
		if got != tcase.expected {
			t.Errorf("Wrong code for '%s', expected %s, got %s", tcase.code, tcase.expected, got)
		}
	}
}

func TestNormalizeInvalid(t *testing.T) {
	if _, err := language.Normalize("not a language"); err == nil {
		t.Errorf("Expected an error for an invalid code")
	}
}

func TestDetect(t *testing.T) {
	for _, tcase := range []struct {
		text     string
		expected string
	}{
		{"Мой дядя самых честных правил, когда не в шутку занемог, он уважать себя заставил и лучше выдумать не мог.", "ru"},
		{"It was the best of times, it was the worst of times, it was the age of wisdom, it was the age of foolishness.", "en"},
		{"En un lugar de la Mancha, de cuyo nombre no quiero acordarme, no ha mucho tiempo que vivía un hidalgo.", "es"},
	} {
		if got := language.Detect(tcase.text); got != tcase.expected {
			t.Errorf("Wrong language detected, expected %s, got %s", tcase.expected, got)
		}
	}
}
