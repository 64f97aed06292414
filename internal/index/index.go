// Package index provides the full text search backends a book is loaded into.
package index

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/svera/epubsearch/internal/epub"
	"github.com/svera/epubsearch/internal/logging"
)

const (
	BackendBleve  = "bleve"
	BackendSQLite = "sqlite"

	DefaultBatchSize = 100
)

var ErrUnknownBackend = errors.New("unknown index backend")

// Index is a searchable representation of a single book
type Index interface {
	Load(doc *epub.Document) error
	Search(term string) (Result, error)
	// Terms returns every distinct indexed word of the book content
	Terms() ([]string, error)
	Close() error
}

// Result holds the chapters matching a search, in reading order
type Result struct {
	Query string `json:"query" yaml:"query"`
	Total int    `json:"total" yaml:"total"`
	Hits  []Hit  `json:"results" yaml:"results"`
}

// Hit is a chapter matching a search
type Hit struct {
	BaseCFI   string   `json:"baseCfi" yaml:"baseCfi"`
	Href      string   `json:"href" yaml:"href"`
	Title     string   `json:"title" yaml:"title"`
	Position  int      `json:"position" yaml:"position"`
	Fragments []string `json:"highlight,omitempty" yaml:"highlight,omitempty"`
}

type Options struct {
	// BatchSize indicates the number of chapters persisted by the indexer in one operation
	BatchSize int
	// SQLiteDSN is the database used by the sqlite backend
	SQLiteDSN string
	Logger    logrus.FieldLogger
}

type Factory func(opts Options) (Index, error)

// Backends lists the available index implementations by identifier
var Backends = map[string]Factory{
	BackendBleve:  newBleveBackend,
	BackendSQLite: newSQLiteBackend,
}

// New returns an empty index of the given backend
func New(backend string, opts Options) (Index, error) {
	factory, ok := Backends[backend]
	if !ok {
		return nil, fmt.Errorf("%w '%s', available: %v", ErrUnknownBackend, backend, BackendNames())
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.SQLiteDSN == "" {
		opts.SQLiteDSN = ":memory:"
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return factory(opts)
}

// BackendNames returns the registered backend identifiers, sorted
func BackendNames() []string {
	names := make([]string, 0, len(Backends))
	for name := range Backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
