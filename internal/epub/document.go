package epub

import "fmt"

// Document is the parsed representation of a book, ready to be loaded into an index
type Document struct {
	Title    string
	Language string
	Chapters []Chapter
}

// Chapter holds the readable text of one spine item
type Chapter struct {
	// Position is the zero-based index of the item in the spine
	Position int
	IDRef    string
	Href     string
	Title    string
	// BaseCFI locates the spine item inside the publication, e.g. /6/4[chap01]!
	BaseCFI string
	Text    string
}

// spineStep is the CFI step of the spine element inside the package document
const spineStep = 6

// BaseCFI returns the canonical fragment identifier of the spine item at position
func BaseCFI(position int, idref string) string {
	if idref == "" {
		return fmt.Sprintf("/%d/%d!", spineStep, (position+1)*2)
	}
	return fmt.Sprintf("/%d/%d[%s]!", spineStep, (position+1)*2, idref)
}
