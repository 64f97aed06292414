package index

import (
	"fmt"

	"github.com/svera/epubsearch/internal/epub"
)

// Load adds every chapter of the document to the index in batches of <batchSize>
func (b *BleveIndexer) Load(doc *epub.Document) error {
	batch := b.idx.NewBatch()
	for _, ch := range doc.Chapters {
		if err := batch.Index(ch.BaseCFI, newChapter(ch)); err != nil {
			return fmt.Errorf("error indexing chapter %s: %w", ch.BaseCFI, err)
		}
		if batch.Size() >= b.batchSize {
			if err := b.idx.Batch(batch); err != nil {
				return err
			}
			batch.Reset()
		}
	}
	if err := b.idx.Batch(batch); err != nil {
		return err
	}
	b.log.Debugf("Indexed %d chapters", len(doc.Chapters))
	return nil
}
