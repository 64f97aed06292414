// Package fixture writes small, valid EPUB books to a filesystem for tests.
package fixture

import (
	"archive/zip"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

const container = `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`

const opf = `<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0" unique-identifier="uid">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:identifier id="uid">urn:uuid:3f1c9a52-0000-4000-8000-000000000001</dc:identifier>
    <dc:title>Test Book</dc:title>
    <dc:language>en</dc:language>
  </metadata>
  <manifest>
    <item id="chap01" href="Text/chapter%2001.xhtml" media-type="application/xhtml+xml"/>
    <item id="chap02" href="Text/chapter02.xhtml" media-type="application/xhtml+xml"/>
    <item id="chap03" href="Text/chapter03.xhtml" media-type="application/xhtml+xml"/>
    <item id="css" href="Styles/style.css" media-type="text/css"/>
  </manifest>
  <spine>
    <itemref idref="chap01"/>
    <itemref idref="chap02" linear="no"/>
    <itemref idref="chap03"/>
  </spine>
</package>`

const chapter01 = `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml">
<head><title>Chapter One</title><style>p { color: red; }</style></head>
<body>
  <h1>The beginning</h1>
  <p>The cat runs across the garden.</p>
  <p>Running is what cats do best.</p>
  <script>var ignored = "run";</script>
</body>
</html>`

const chapter02 = `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml">
<head></head>
<body>
  <h2>Interlude</h2>
  <p>Nothing happens here.</p>
</body>
</html>`

const chapter03 = `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml">
<head><title>Chapter Three</title></head>
<body>
  <p>The runner ran home.</p>
  <p>The dog runs, the cat sleeps.</p>
</body>
</html>`

// Files returns the content of the test book, keyed by its path inside the publication.
func Files() map[string]string {
	return map[string]string{
		"mimetype":                    "application/epub+zip",
		"META-INF/container.xml":      container,
		"OEBPS/content.opf":           opf,
		"OEBPS/Text/chapter 01.xhtml": chapter01,
		"OEBPS/Text/chapter02.xhtml":  chapter02,
		"OEBPS/Text/chapter03.xhtml":  chapter03,
		"OEBPS/Styles/style.css":      "p { margin: 0; }",
	}
}

// WriteDir writes the test book, already extracted, under dir
func WriteDir(fs afero.Fs, dir string, files map[string]string) error {
	for name, content := range files {
		target := filepath.Join(dir, filepath.FromSlash(name))
		if err := fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		if err := afero.WriteFile(fs, target, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}

// WriteArchive writes the test book as a zipped EPUB file at path
func WriteArchive(fs afero.Fs, path string, files map[string]string) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := fs.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	// mimetype goes first in a valid EPUB
	sort.Slice(names, func(i, j int) bool {
		if names[i] == "mimetype" {
			return true
		}
		if names[j] == "mimetype" {
			return false
		}
		return names[i] < names[j]
	})

	zw := zip.NewWriter(f)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			return err
		}
		if _, err = w.Write([]byte(files[name])); err != nil {
			return err
		}
	}
	return zw.Close()
}
