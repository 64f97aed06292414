// Package epub reads an extracted EPUB publication and returns its text content in reading order.
package epub

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/bmatcuk/doublestar/v4"
	opf "github.com/pirmd/epub"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
)

const containerPath = "META-INF/container.xml"

var (
	ErrNoPackage   = errors.New("no package document found")
	ErrBrokenSpine = errors.New("spine references an item missing from the manifest")
)

type container struct {
	XMLName   xml.Name `xml:"urn:oasis:names:tc:opendocument:xmlns:container container"`
	Rootfiles []struct {
		FullPath string `xml:"full-path,attr"`
	} `xml:"rootfiles>rootfile"`
}

type Parser struct {
	fs  afero.Fs
	log logrus.FieldLogger
}

// NewParser creates a new Parser reading from the passed filesystem
func NewParser(fs afero.Fs, log logrus.FieldLogger) *Parser {
	return &Parser{fs: fs, log: log}
}

// Parse reads the publication extracted at dir
func (p *Parser) Parse(dir string) (*Document, error) {
	root := afero.NewBasePathFs(p.fs, dir)

	packagePath, err := p.packagePath(root)
	if err != nil {
		return nil, err
	}
	p.log.Debugf("Reading package document %s", packagePath)

	pkg, err := readPackage(root, packagePath)
	if err != nil {
		return nil, fmt.Errorf("error reading package document %s: %w", packagePath, err)
	}

	doc := &Document{}
	if pkg.Metadata != nil {
		if len(pkg.Metadata.Title) > 0 {
			doc.Title = strings.TrimSpace(pkg.Metadata.Title[0].Value)
		}
		if len(pkg.Metadata.Language) > 0 {
			doc.Language = strings.TrimSpace(pkg.Metadata.Language[0].Value)
		}
	}
	if pkg.Spine == nil || pkg.Manifest == nil {
		return doc, nil
	}

	items := make(map[string]opf.Item, len(pkg.Manifest.Items))
	for _, item := range pkg.Manifest.Items {
		items[item.ID] = item
	}

	for i, itemref := range pkg.Spine.Itemrefs {
		item, ok := items[itemref.IDref]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrBrokenSpine, itemref.IDref)
		}
		chapter, err := p.chapter(root, packagePath, item)
		if err != nil {
			return nil, err
		}
		chapter.Position = i
		chapter.IDRef = itemref.IDref
		chapter.BaseCFI = BaseCFI(i, itemref.IDref)
		doc.Chapters = append(doc.Chapters, chapter)
	}
	p.log.Debugf("Parsed %d chapters", len(doc.Chapters))
	return doc, nil
}

func (p *Parser) packagePath(root afero.Fs) (string, error) {
	f, err := root.Open(containerPath)
	if err == nil {
		defer f.Close()
		c := container{}
		if err = decodeXML(f, &c); err != nil {
			return "", fmt.Errorf("error reading %s: %w", containerPath, err)
		}
		if len(c.Rootfiles) > 0 && c.Rootfiles[0].FullPath != "" {
			return c.Rootfiles[0].FullPath, nil
		}
	}

	// Some tools extract books without META-INF, look for the package document anywhere
	p.log.Warnf("No usable %s, looking for a package document", containerPath)
	matches, err := doublestar.Glob(afero.NewIOFS(root), "**/*.opf")
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", ErrNoPackage
	}
	return matches[0], nil
}

func readPackage(root afero.Fs, packagePath string) (*opf.PackageDocument, error) {
	f, err := root.Open(packagePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pkg := &opf.PackageDocument{}
	if err = decodeXML(f, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

func decodeXML(r io.Reader, v any) error {
	decoder := xml.NewDecoder(r)
	decoder.Entity = xml.HTMLEntity
	decoder.CharsetReader = charset.NewReaderLabel
	return decoder.Decode(v)
}

func (p *Parser) chapter(root afero.Fs, packagePath string, item opf.Item) (Chapter, error) {
	href, err := url.PathUnescape(item.Href)
	if err != nil {
		return Chapter{}, fmt.Errorf("invalid href %s: %w", item.Href, err)
	}
	name := path.Clean(path.Join(path.Dir(packagePath), href))
	if strings.HasPrefix(name, "../") || path.IsAbs(href) {
		return Chapter{}, fmt.Errorf("href %s points outside of the publication", item.Href)
	}

	f, err := root.Open(filepath.FromSlash(name))
	if err != nil {
		return Chapter{}, fmt.Errorf("error opening %s: %w", name, err)
	}
	defer f.Close()

	title, text, err := extract(f)
	if err != nil {
		return Chapter{}, fmt.Errorf("error parsing %s: %w", name, err)
	}
	return Chapter{
		Href:  item.Href,
		Title: title,
		Text:  text,
	}, nil
}

func extract(r io.Reader) (title string, text string, err error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", "", err
	}

	title = strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1, h2, h3").First().Text())
	}

	doc.Find("script, style, head").Remove()

	var lines []string
	var current strings.Builder
	flush := func() {
		if line := strings.Join(strings.Fields(current.String()), " "); line != "" {
			lines = append(lines, line)
		}
		current.Reset()
	}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			current.WriteString(n.Data)
			current.WriteByte(' ')
			return
		}
		block := n.Type == html.ElementNode && blockElements[n.DataAtom]
		if block {
			flush()
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			flush()
		}
	}
	for _, n := range doc.Find("body").Nodes {
		walk(n)
	}
	flush()

	return title, strings.Join(lines, "\n"), nil
}

var blockElements = map[atom.Atom]bool{
	atom.Address:    true,
	atom.Article:    true,
	atom.Aside:      true,
	atom.Blockquote: true,
	atom.Br:         true,
	atom.Dd:         true,
	atom.Div:        true,
	atom.Dl:         true,
	atom.Dt:         true,
	atom.Figcaption: true,
	atom.Figure:     true,
	atom.Footer:     true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
	atom.Header:     true,
	atom.Hr:         true,
	atom.Li:         true,
	atom.Ol:         true,
	atom.P:          true,
	atom.Pre:        true,
	atom.Section:    true,
	atom.Table:      true,
	atom.Td:         true,
	atom.Th:         true,
	atom.Tr:         true,
	atom.Ul:         true,
}
