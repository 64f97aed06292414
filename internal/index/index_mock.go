package index

import "github.com/svera/epubsearch/internal/epub"

type IndexMock struct {
	LoadFake   func(doc *epub.Document) error
	SearchFake func(term string) (Result, error)
	TermsFake  func() ([]string, error)
	CloseFake  func() error
}

func NewIndexMock() *IndexMock {
	return &IndexMock{
		LoadFake: func(doc *epub.Document) error {
			return nil
		},
		SearchFake: func(term string) (Result, error) {
			return Result{Query: term}, nil
		},
		TermsFake: func() ([]string, error) {
			return nil, nil
		},
		CloseFake: func() error {
			return nil
		},
	}
}

func (i *IndexMock) Load(doc *epub.Document) error {
	return i.LoadFake(doc)
}

func (i *IndexMock) Search(term string) (Result, error) {
	return i.SearchFake(term)
}

func (i *IndexMock) Terms() ([]string, error) {
	return i.TermsFake()
}

func (i *IndexMock) Close() error {
	return i.CloseFake()
}
