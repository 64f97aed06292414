// Package morph expands a word into the forms of it found in a book.
package morph

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/snowballstem"
	"github.com/blevesearch/snowballstem/dutch"
	"github.com/blevesearch/snowballstem/english"
	"github.com/blevesearch/snowballstem/french"
	"github.com/blevesearch/snowballstem/german"
	"github.com/blevesearch/snowballstem/italian"
	"github.com/blevesearch/snowballstem/portuguese"
	"github.com/blevesearch/snowballstem/russian"
	"github.com/blevesearch/snowballstem/spanish"
	"github.com/blevesearch/snowballstem/swedish"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrUnsupportedLanguage = errors.New("no stemmer available for language")

var stemmers = map[string]func(env *snowballstem.Env) bool{
	"de": german.Stem,
	"en": english.Stem,
	"es": spanish.Stem,
	"fr": french.Stem,
	"it": italian.Stem,
	"nl": dutch.Stem,
	"pt": portuguese.Stem,
	"ru": russian.Stem,
	"sv": swedish.Stem,
}

// Generator returns the word forms to look for when searching for word
type Generator interface {
	Expand(word string) ([]string, error)
}

// Vocabulary is the list of words a book contains
type Vocabulary interface {
	Terms() ([]string, error)
}

// Analyzer turns a word into the term an index stores for it
type Analyzer interface {
	Analyze(input []byte) analysis.TokenStream
}

// snowball does not treat ё as a vowel, and texts spell it both ways anyway
var yoReplacer = strings.NewReplacer("ё", "е", "Ё", "Е")

// StemGenerator considers two words forms of the same lexeme when they share their snowball stem
type StemGenerator struct {
	stem     func(env *snowballstem.Env) bool
	caser    cases.Caser
	vocab    Vocabulary
	analyzer Analyzer
}

type Option func(*StemGenerator)

// WithAnalyzer makes the generator normalise words the same way the vocabulary was built,
// e.g. folding accents, before stemming them
func WithAnalyzer(analyzer Analyzer) Option {
	return func(g *StemGenerator) {
		g.analyzer = analyzer
	}
}

// New returns a StemGenerator for the given ISO 639-1 language code
func New(lang string, vocab Vocabulary, opts ...Option) (*StemGenerator, error) {
	stem, ok := stemmers[lang]
	if !ok {
		return nil, fmt.Errorf("%w '%s'", ErrUnsupportedLanguage, lang)
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, err
	}
	g := &StemGenerator{
		stem:  stem,
		caser: cases.Lower(tag),
		vocab: vocab,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Supported tells whether a stemmer exists for the language
func Supported(lang string) bool {
	_, ok := stemmers[lang]
	return ok
}

// Stem returns the stem of an already lowercased word
func (g *StemGenerator) Stem(word string) string {
	env := snowballstem.NewEnv(yoReplacer.Replace(word))
	g.stem(env)
	return env.Current()
}

// Expand returns word itself, lowercased, followed by the vocabulary words sharing its stem, sorted
func (g *StemGenerator) Expand(word string) ([]string, error) {
	word = g.caser.String(word)
	terms, err := g.vocab.Terms()
	if err != nil {
		return nil, err
	}

	term := g.term(word)
	stem := g.Stem(term)
	var forms []string
	seen := map[string]bool{word: true, term: true}
	for _, t := range terms {
		if seen[t] {
			continue
		}
		if g.Stem(t) == stem {
			seen[t] = true
			forms = append(forms, t)
		}
	}
	sort.Strings(forms)
	return append([]string{word}, forms...), nil
}

// term returns word as the vocabulary stores it. Words the analyzer splits or drops are kept as they are.
func (g *StemGenerator) term(word string) string {
	if g.analyzer == nil {
		return word
	}
	tokens := g.analyzer.Analyze([]byte(word))
	if len(tokens) != 1 {
		return word
	}
	return string(tokens[0].Term)
}
