package index

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/char/asciifolding"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/sirupsen/logrus"
)

// AnalyzerName identifies the analyzer applied to chapter content. It does no stemming,
// so words are indexed as they are written.
const AnalyzerName = "book"

type BleveIndexer struct {
	idx       bleve.Index
	batchSize int
	log       logrus.FieldLogger
}

// NewBleve creates a new BleveIndexer instance using the passed parameters
func NewBleve(index bleve.Index, batchSize int, log logrus.FieldLogger) *BleveIndexer {
	return &BleveIndexer{
		idx:       index,
		batchSize: batchSize,
		log:       log,
	}
}

func newBleveBackend(opts Options) (Index, error) {
	indexMapping, err := CreateMapping()
	if err != nil {
		return nil, err
	}
	idx, err := bleve.NewMemOnly(indexMapping)
	if err != nil {
		return nil, err
	}
	return NewBleve(idx, opts.BatchSize, opts.Logger), nil
}

// CreateMapping returns the mapping used for chapter documents
func CreateMapping() (*mapping.IndexMappingImpl, error) {
	indexMapping := bleve.NewIndexMapping()

	err := indexMapping.AddCustomAnalyzer(AnalyzerName,
		map[string]interface{}{
			"type": custom.Name,
			"char_filters": []string{
				asciifolding.Name,
			},
			"tokenizer": unicode.Name,
			"token_filters": []string{
				lowercase.Name,
			},
		})
	if err != nil {
		return nil, err
	}
	indexMapping.DefaultAnalyzer = AnalyzerName

	chapterMapping := bleve.NewDocumentMapping()
	contentFieldMapping := bleve.NewTextFieldMapping()
	contentFieldMapping.Analyzer = AnalyzerName
	chapterMapping.AddFieldMappingsAt("Content", contentFieldMapping)
	titleFieldMapping := bleve.NewTextFieldMapping()
	titleFieldMapping.Analyzer = AnalyzerName
	chapterMapping.AddFieldMappingsAt("Title", titleFieldMapping)
	chapterMapping.AddFieldMappingsAt("BaseCFI", bleve.NewKeywordFieldMapping())
	chapterMapping.AddFieldMappingsAt("Href", bleve.NewKeywordFieldMapping())
	chapterMapping.AddFieldMappingsAt("Position", bleve.NewNumericFieldMapping())
	indexMapping.DefaultMapping = chapterMapping

	return indexMapping, nil
}

// Analyzer splits text into the terms stored in the index
type Analyzer interface {
	Analyze(input []byte) analysis.TokenStream
}

// NewAnalyzer returns the analyzer applied to chapter content, so words can be
// compared with the indexed terms
func NewAnalyzer() (Analyzer, error) {
	indexMapping, err := CreateMapping()
	if err != nil {
		return nil, err
	}
	analyzer := indexMapping.AnalyzerNamed(AnalyzerName)
	if analyzer == nil {
		return nil, fmt.Errorf("analyzer %s not defined", AnalyzerName)
	}
	return analyzer, nil
}

// Close closes the index
func (b *BleveIndexer) Close() error {
	return b.idx.Close()
}
