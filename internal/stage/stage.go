// Package stage prepares a book reference for parsing, extracting archives into a scratch directory.
package stage

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

const (
	// DefaultScratchRoot is where archives are extracted unless told otherwise
	DefaultScratchRoot = "./tmp"
	// archiveSuffix is compared against the last characters of a book reference
	archiveSuffix = "epub"
	// trimmed from the end of the file name to get the scratch directory name
	archiveExtension = ".epub"
)

var (
	ErrNotStaged  = errors.New("book was not staged from an archive, there is no scratch directory")
	ErrEmptyName  = errors.New("cannot derive a scratch directory name from the book reference")
	ErrUnsafePath = errors.New("archive entry points outside of the scratch directory")
)

// Staged describes where the content of a book can be read from.
// Scratch is set if and only if the book was extracted from an archive.
type Staged struct {
	Dir     string
	Scratch string
}

// Archived tells whether the book was extracted and needs cleanup
func (s Staged) Archived() bool {
	return s.Scratch != ""
}

type Stager struct {
	fs     afero.Fs
	root   string
	unique bool
	log    logrus.FieldLogger
}

type Option func(*Stager)

// WithScratchRoot changes the directory under which archives get extracted
func WithScratchRoot(root string) Option {
	return func(s *Stager) {
		s.root = root
	}
}

// WithUniqueScratch appends a random suffix to every scratch directory, so concurrent
// invocations on the same book don't step on each other.
func WithUniqueScratch(unique bool) Option {
	return func(s *Stager) {
		s.unique = unique
	}
}

// New creates a new Stager instance working on the passed filesystem
func New(fs afero.Fs, log logrus.FieldLogger, opts ...Option) *Stager {
	s := &Stager{
		fs:   fs,
		root: DefaultScratchRoot,
		log:  log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsArchive reports whether a book reference must be extracted before use.
// The check is case sensitive and only looks at the last characters of the reference.
func IsArchive(bookReference string) bool {
	return strings.HasSuffix(bookReference, archiveSuffix)
}

// ScratchName returns the name of the directory an archive is extracted to,
// which is the reference's base name without the extension.
func ScratchName(bookReference string) (string, error) {
	start := strings.LastIndex(bookReference, "/") + 1
	end := len(bookReference) - len(archiveExtension)
	if end <= start {
		return "", ErrEmptyName
	}
	return bookReference[start:end], nil
}

// Stage returns the directory the book content can be read from, extracting it first if it is an archive.
func (s *Stager) Stage(bookReference string) (Staged, error) {
	if !IsArchive(bookReference) {
		return Staged{Dir: bookReference}, nil
	}

	name, err := ScratchName(bookReference)
	if err != nil {
		return Staged{}, err
	}
	if s.unique {
		name = name + "-" + uuid.NewString()
	}
	dest := path.Join(s.root, name)
	if strings.HasPrefix(s.root, "./") {
		dest = "./" + dest
	}

	s.log.Infof("Uncompress %s", bookReference)
	if err := s.unzip(bookReference, dest); err != nil {
		return Staged{}, err
	}
	return Staged{Dir: dest, Scratch: dest}, nil
}

// Cleanup removes the scratch directory of a staged book
func (s *Stager) Cleanup(staged Staged) error {
	if !staged.Archived() {
		return ErrNotStaged
	}
	s.log.Debugf("Removing %s", staged.Scratch)
	return s.fs.RemoveAll(staged.Scratch)
}

func (s *Stager) unzip(source, dest string) error {
	f, err := s.fs.Open(source)
	if err != nil {
		return fmt.Errorf("error opening archive %s: %w", source, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("error reading archive %s: %w", source, err)
	}
	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		return fmt.Errorf("error reading archive %s: %w", source, err)
	}

	if err = s.fs.MkdirAll(dest, 0755); err != nil {
		return err
	}
	for _, zf := range zr.File {
		if err := s.extract(zf, dest); err != nil {
			if removeErr := s.fs.RemoveAll(dest); removeErr != nil {
				s.log.Errorf("Error removing %s: %s", dest, removeErr)
			}
			return err
		}
	}
	return nil
}

func (s *Stager) extract(zf *zip.File, dest string) error {
	name := path.Clean(zf.Name)
	if path.IsAbs(name) || name == ".." || strings.HasPrefix(name, "../") {
		return fmt.Errorf("%w: %s", ErrUnsafePath, zf.Name)
	}
	target := filepath.Join(dest, filepath.FromSlash(name))

	if zf.FileInfo().IsDir() {
		return s.fs.MkdirAll(target, 0755)
	}
	if err := s.fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	rc, err := zf.Open()
	if err != nil {
		return fmt.Errorf("error extracting %s: %w", zf.Name, err)
	}
	defer rc.Close()

	out, err := s.fs.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err = io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("error extracting %s: %w", zf.Name, err)
	}
	return out.Close()
}
