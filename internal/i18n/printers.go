// Package i18n translates the messages shown when results are printed as text.
package i18n

import (
	"embed"
	"io/fs"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed translations/*.yml
var translations embed.FS

const fallbackLang = "en"

// Printers returns a message printer for every translation found in dir
func Printers(dir fs.FS) (map[string]*message.Printer, error) {
	cat, err := NewCatalogFromFolder(dir, fallbackLang)
	if err != nil {
		return nil, err
	}

	printers := map[string]*message.Printer{}
	for _, tag := range cat.Languages() {
		base, _ := tag.Base()
		printers[base.String()] = message.NewPrinter(tag, message.Catalog(cat))
	}
	return printers, nil
}

// bundledPrinters loads the embedded translations the first time a printer is requested
var bundledPrinters = sync.OnceValues(func() (map[string]*message.Printer, error) {
	dir, err := fs.Sub(translations, "translations")
	if err != nil {
		return nil, err
	}
	return Printers(dir)
})

// Printer returns a printer for lang using the bundled translations, falling back to english
func Printer(lang string) *message.Printer {
	printers, err := bundledPrinters()
	if err != nil {
		return message.NewPrinter(language.English)
	}
	if p, ok := printers[lang]; ok {
		return p
	}
	return printers[fallbackLang]
}
