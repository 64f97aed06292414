// Package session ties together staging, parsing, indexing and searching of one book.
package session

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/svera/epubsearch/internal/epub"
	"github.com/svera/epubsearch/internal/index"
	"github.com/svera/epubsearch/internal/language"
	"github.com/svera/epubsearch/internal/morph"
	"github.com/svera/epubsearch/internal/stage"
)

// DefaultLanguage is used when the language can't be found in the book nor guessed from its content
const DefaultLanguage = "en"

// how much text is fed to the language detector
const detectionSample = 2000

// Parser turns a directory holding an extracted book into a document
type Parser interface {
	Parse(dir string) (*epub.Document, error)
}

// Deps holds the collaborators a Session relies on
type Deps struct {
	Stager       *stage.Stager
	Parser       Parser
	NewIndex     func() (index.Index, error)
	NewGenerator func(lang string, vocab morph.Vocabulary) (morph.Generator, error)
	Logger       logrus.FieldLogger
}

// LexemeResult holds the locations where any form of a word appears
type LexemeResult struct {
	Word    string   `json:"word" yaml:"word"`
	Lexemes []string `json:"lexemes" yaml:"lexemes"`
	Results []string `json:"results" yaml:"results"`
}

// Session is one book opened for search. It is not safe for concurrent use.
type Session struct {
	staged    stage.Staged
	stager    *stage.Stager
	index     index.Index
	lang      string
	generator morph.Generator
	deps      Deps
	log       logrus.FieldLogger
	released  bool
}

// Open stages, parses and indexes the book found at bookReference.
// lang may be empty, in which case it is taken from the book metadata or guessed from its content.
func Open(bookReference, lang string, deps Deps) (*Session, error) {
	if deps.NewGenerator == nil {
		deps.NewGenerator = func(lang string, vocab morph.Vocabulary) (morph.Generator, error) {
			analyzer, err := index.NewAnalyzer()
			if err != nil {
				return nil, err
			}
			return morph.New(lang, vocab, morph.WithAnalyzer(analyzer))
		}
	}

	staged, err := deps.Stager.Stage(bookReference)
	if err != nil {
		return nil, err
	}
	s := &Session{
		staged: staged,
		stager: deps.Stager,
		deps:   deps,
		log:    deps.Logger,
	}

	if err = s.load(lang); err != nil {
		if staged.Archived() {
			if cleanupErr := s.stager.Cleanup(staged); cleanupErr != nil {
				s.log.Errorf("Error removing %s: %s", staged.Scratch, cleanupErr)
			}
		}
		return nil, err
	}
	return s, nil
}

func (s *Session) load(lang string) error {
	s.log.Infof("Parsing %s", s.staged.Dir)
	doc, err := s.deps.Parser.Parse(s.staged.Dir)
	if err != nil {
		return err
	}

	s.lang, err = resolveLanguage(lang, doc)
	if err != nil {
		return err
	}

	s.index, err = s.deps.NewIndex()
	if err != nil {
		return err
	}
	s.log.Info("Indexing")
	if err = s.index.Load(doc); err != nil {
		s.index.Close()
		return err
	}
	return nil
}

// Language returns the language used to generate word forms
func (s *Session) Language() string {
	return s.lang
}

// Staged returns where the book content is read from
func (s *Session) Staged() stage.Staged {
	return s.staged
}

// SearchWord returns the chapters containing word, as returned by the index
func (s *Session) SearchWord(word string) (index.Result, error) {
	s.log.Infof("Search word %s", word)
	return s.index.Search(word)
}

// SearchLexemes looks for every form of word and returns the locations of all of them,
// in the order the forms were generated. Locations are not deduplicated.
func (s *Session) SearchLexemes(word string) (LexemeResult, error) {
	s.log.Info("Generate words for search")
	if s.generator == nil {
		generator, err := s.deps.NewGenerator(s.lang, s.index)
		if err != nil {
			return LexemeResult{}, err
		}
		s.generator = generator
	}
	words, err := s.generator.Expand(word)
	if err != nil {
		return LexemeResult{}, err
	}
	s.log.Infof("Search word %s and lexemes %s", word, strings.Join(words, ", "))

	raw := make([]index.Result, 0, len(words))
	for _, w := range words {
		res, err := s.index.Search(w)
		if err != nil {
			return LexemeResult{}, err
		}
		raw = append(raw, res)
	}

	return LexemeResult{
		Word:    word,
		Lexemes: words,
		Results: locations(raw),
	}, nil
}

// locations flattens the results keeping their order, both between and within results
func locations(results []index.Result) []string {
	flat := []string{}
	for _, res := range results {
		for _, hit := range res.Hits {
			flat = append(flat, hit.BaseCFI)
		}
	}
	return flat
}

// Release frees the index and removes the scratch directory, if the book was extracted from an archive.
// Calling it more than once is harmless.
func (s *Session) Release() error {
	if s.released {
		return nil
	}
	s.released = true

	err := s.index.Close()
	if s.staged.Archived() {
		s.log.Infof("Removing %s", s.staged.Scratch)
		if cleanupErr := s.stager.Cleanup(s.staged); cleanupErr != nil {
			return cleanupErr
		}
	}
	return err
}

// Close frees the session like Release does, but fails with stage.ErrNotStaged
// if the book was not extracted from an archive.
func (s *Session) Close() error {
	if !s.staged.Archived() {
		if !s.released {
			s.released = true
			s.index.Close()
		}
		return stage.ErrNotStaged
	}
	return s.Release()
}

// Use opens a session, passes it to fn and releases it afterwards, whatever happens in fn.
func Use(bookReference, lang string, deps Deps, fn func(s *Session) error) (err error) {
	s, err := Open(bookReference, lang, deps)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.Release(); releaseErr != nil && err == nil {
			err = releaseErr
		}
	}()
	return fn(s)
}

func resolveLanguage(lang string, doc *epub.Document) (string, error) {
	if lang != "" {
		normalized, err := language.Normalize(lang)
		if err != nil {
			return "", fmt.Errorf("invalid language '%s': %w", lang, err)
		}
		return normalized, nil
	}
	if doc.Language != "" {
		if normalized, err := language.Normalize(doc.Language); err == nil {
			return normalized, nil
		}
	}
	if detected := language.Detect(sample(doc)); detected != "" {
		return detected, nil
	}
	return DefaultLanguage, nil
}

func sample(doc *epub.Document) string {
	var b strings.Builder
	for _, ch := range doc.Chapters {
		if b.Len() >= detectionSample {
			break
		}
		b.WriteString(ch.Text)
		b.WriteByte('\n')
	}
	return b.String()
}
