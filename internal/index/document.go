package index

import "github.com/svera/epubsearch/internal/epub"

// Chapter is the representation of an epub.Chapter stored in the index
type Chapter struct {
	BaseCFI  string
	Href     string
	Title    string
	Position int
	Content  string
}

func newChapter(ch epub.Chapter) Chapter {
	return Chapter{
		BaseCFI:  ch.BaseCFI,
		Href:     ch.Href,
		Title:    ch.Title,
		Position: ch.Position,
		Content:  ch.Text,
	}
}
