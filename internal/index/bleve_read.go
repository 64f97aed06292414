package index

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
	bleveindex "github.com/blevesearch/bleve_index_api"
)

// Search look for chapters containing the passed word. All matching chapters are returned, in reading order.
func (b *BleveIndexer) Search(term string) (Result, error) {
	result := Result{Query: term, Hits: []Hit{}}

	count, err := b.idx.DocCount()
	if err != nil || count == 0 {
		return result, err
	}

	// Every word of term must appear in the chapter, as in the sqlite backend
	matchQuery := bleve.NewMatchQuery(term)
	matchQuery.SetField("Content")
	matchQuery.SetOperator(query.MatchQueryOperatorAnd)
	searchOptions := bleve.NewSearchRequestOptions(matchQuery, int(count), 0, false)
	searchOptions.SortBy([]string{"Position"})
	searchOptions.Fields = []string{"BaseCFI", "Href", "Title", "Position"}
	searchOptions.Highlight = bleve.NewHighlight()
	searchOptions.Highlight.AddField("Content")

	searchResult, err := b.idx.Search(searchOptions)
	if err != nil {
		return result, err
	}

	result.Total = int(searchResult.Total)
	result.Hits = make([]Hit, 0, len(searchResult.Hits))
	for _, val := range searchResult.Hits {
		hit := Hit{
			BaseCFI:   stringField(val.Fields, "BaseCFI"),
			Href:      stringField(val.Fields, "Href"),
			Title:     stringField(val.Fields, "Title"),
			Fragments: val.Fragments["Content"],
		}
		if position, ok := val.Fields["Position"].(float64); ok {
			hit.Position = int(position)
		}
		result.Hits = append(result.Hits, hit)
	}
	return result, nil
}

// Terms returns the distinct words found in the chapters content, as stored in the index
func (b *BleveIndexer) Terms() ([]string, error) {
	dict, err := b.idx.FieldDict("Content")
	if err != nil {
		return nil, err
	}
	defer dict.Close()
	return dictionaryTerms(dict)
}

// Count returns the number of indexed chapters
func (b *BleveIndexer) Count() (uint64, error) {
	return b.idx.DocCount()
}

func dictionaryTerms(dict bleveindex.FieldDict) ([]string, error) {
	var terms []string
	entry, err := dict.Next()
	for err == nil && entry != nil {
		terms = append(terms, entry.Term)
		entry, err = dict.Next()
	}
	return terms, err
}

func stringField(fields map[string]interface{}, name string) string {
	if value, ok := fields[name].(string); ok {
		return value
	}
	return ""
}
