package i18n_test

import (
	"testing"

	"github.com/svera/epubsearch/internal/i18n"
)

func TestPrinter(t *testing.T) {
	for _, tcase := range []struct {
		name     string
		lang     string
		expected string
	}{
		{"English", "en", "3 chapters contain \"cat\""},
		{"Spanish", "es", "3 capítulos contienen \"cat\""},
		{"Russian with reordered arguments", "ru", "Глав, содержащих «cat»: 3"},
		{"Missing translation falls back to english", "de", "3 chapters contain \"cat\""},
	} {
		t.Run(tcase.name, func(t *testing.T) {
			got := i18n.Printer(tcase.lang).Sprintf("%d chapters contain \"%s\"", 3, "cat")
			if got != tcase.expected {
				t.Errorf("Wrong translation, expected '%s', got '%s'", tcase.expected, got)
			}
		})
	}
}

func TestPrinterReusesBundledCatalog(t *testing.T) {
	if i18n.Printer("es") != i18n.Printer("es") {
		t.Errorf("Expected the same printer to be returned for the same language")
	}
	if i18n.Printer("de") != i18n.Printer("en") {
		t.Errorf("Expected the english printer as fallback")
	}
}

func TestParseYAMLDict(t *testing.T) {
	dict, err := i18n.ParseYAMLDict([]byte("\"Hello\": \"Hola\""))
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	value, ok := dict.Lookup("Hello")
	if !ok || value != "\x02Hola" {
		t.Errorf("Wrong entry returned: %q", value)
	}
	if _, ok = dict.Lookup("Bye"); ok {
		t.Errorf("Unknown key must not be found")
	}
}
