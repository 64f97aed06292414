package morph_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/svera/epubsearch/internal/index"
	"github.com/svera/epubsearch/internal/morph"
)

func TestExpand(t *testing.T) {
	for _, tcase := range []struct {
		name     string
		lang     string
		vocab    morph.VocabularyMock
		word     string
		expected []string
	}{
		{
			"English forms sharing the stem",
			"en",
			morph.VocabularyMock{"the", "runs", "cat", "running", "runner", "run", "cats"},
			"run",
			[]string{"run", "running", "runs"},
		},
		{
			"Word is lowercased and kept first even if missing from the book",
			"en",
			morph.VocabularyMock{"cats"},
			"Cat",
			[]string{"cat", "cats"},
		},
		{
			"Russian forms sharing the stem",
			"ru",
			morph.VocabularyMock{"книга", "книги", "книгу", "книгой", "читать", "кот"},
			"Книга",
			[]string{"книга", "книги", "книгой", "книгу"},
		},
		{
			"Spanish plural and singular",
			"es",
			morph.VocabularyMock{"gato", "gatos", "perro"},
			"gato",
			[]string{"gato", "gatos"},
		},
		{
			"Russian forms spelled with ё",
			"ru",
			morph.VocabularyMock{"ёлка", "ёлки", "ель"},
			"Ёлка",
			[]string{"ёлка", "ёлки"},
		},
		{
			"No forms in the book",
			"en",
			morph.VocabularyMock{},
			"dog",
			[]string{"dog"},
		},
	} {
		t.Run(tcase.name, func(t *testing.T) {
			gen, err := morph.New(tcase.lang, tcase.vocab)
			if err != nil {
				t.Fatalf("Unexpected error: %s", err)
			}
			forms, err := gen.Expand(tcase.word)
			if err != nil {
				t.Fatalf("Unexpected error: %s", err)
			}
			if !reflect.DeepEqual(forms, tcase.expected) {
				t.Errorf("Wrong forms returned, expected %v, got %v", tcase.expected, forms)
			}
		})
	}
}

func TestExpandWithIndexAnalyzer(t *testing.T) {
	analyzer, err := index.NewAnalyzer()
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}

	for _, tcase := range []struct {
		name     string
		lang     string
		vocab    morph.VocabularyMock
		word     string
		expected []string
	}{
		{
			"Accented word matches folded vocabulary",
			"fr",
			morph.VocabularyMock{"les", "etes", "sont", "chauds", "cet", "ete", "fut", "long"},
			"Été",
			[]string{"été", "etes"},
		},
		{
			"Unaccented word matches folded vocabulary",
			"fr",
			morph.VocabularyMock{"les", "etes", "sont", "chauds", "cet", "ete", "fut", "long"},
			"ete",
			[]string{"ete", "etes"},
		},
		{
			"Spanish accented plural",
			"es",
			morph.VocabularyMock{"corazon", "corazones", "perro"},
			"corazón",
			[]string{"corazón", "corazones"},
		},
		{
			"Russian ё through the index analyzer",
			"ru",
			morph.VocabularyMock{"ёлка", "ёлки", "ель"},
			"Ёлки",
			[]string{"ёлки", "ёлка"},
		},
	} {
		t.Run(tcase.name, func(t *testing.T) {
			gen, err := morph.New(tcase.lang, tcase.vocab, morph.WithAnalyzer(analyzer))
			if err != nil {
				t.Fatalf("Unexpected error: %s", err)
			}
			forms, err := gen.Expand(tcase.word)
			if err != nil {
				t.Fatalf("Unexpected error: %s", err)
			}
			if !reflect.DeepEqual(forms, tcase.expected) {
				t.Errorf("Wrong forms returned, expected %v, got %v", tcase.expected, forms)
			}
		})
	}
}

func TestUnsupportedLanguage(t *testing.T) {
	if _, err := morph.New("xx", morph.VocabularyMock{}); !errors.Is(err, morph.ErrUnsupportedLanguage) {
		t.Errorf("Expected ErrUnsupportedLanguage, got %v", err)
	}
	if morph.Supported("xx") || !morph.Supported("ru") {
		t.Errorf("Wrong supported languages")
	}
}

type failingVocabulary struct{}

func (failingVocabulary) Terms() ([]string, error) {
	return nil, errors.New("index closed")
}

func TestExpandPropagatesVocabularyErrors(t *testing.T) {
	gen, err := morph.New("en", failingVocabulary{})
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if _, err = gen.Expand("run"); err == nil {
		t.Errorf("Expected the vocabulary error to be returned")
	}
}
