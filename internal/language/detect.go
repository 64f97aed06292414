// Package language normalises language codes and guesses the language of a text.
package language

import (
	"slices"
	"strings"

	"github.com/pemistahl/lingua-go"
	"golang.org/x/text/language"
)

var languages = []lingua.Language{
	lingua.Dutch,
	lingua.English,
	lingua.French,
	lingua.German,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Russian,
	lingua.Spanish,
	lingua.Swedish,
}

// Detect returns the ISO 639-1 code of the language text is written in, or an empty string if unsure
func Detect(text string) string {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(languages...).
		Build()

	if language, exists := detector.DetectLanguageOf(text); exists {
		if slices.Contains(languages, language) {
			return strings.ToLower(language.IsoCode639_1().String())
		}
	}

	return ""
}

// Normalize returns the ISO 639-1 base of a language tag, e.g. "ru" for "ru-RU"
func Normalize(code string) (string, error) {
	tag, err := language.Parse(strings.TrimSpace(code))
	if err != nil {
		return "", err
	}
	base, _ := tag.Base()
	return base.String(), nil
}
