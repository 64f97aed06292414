// Package logging builds the file logger shared by every component of a run.
package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// TimestampFormat mirrors the classic "asctime" layout, milliseconds after a comma.
const TimestampFormat = "2006-01-02 15:04:05,000"

// Formatter writes entries as LEVEL:timestamp message, followed by any fields as key=value.
type Formatter struct {
	TimestampFormat string
}

// Format implements logrus.Formatter
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	layout := f.TimestampFormat
	if layout == "" {
		layout = TimestampFormat
	}

	b := &bytes.Buffer{}
	if entry.Buffer != nil {
		b = entry.Buffer
	}

	fmt.Fprintf(b, "%s:%s %s", strings.ToUpper(entry.Level.String()), entry.Time.Format(layout), entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, " %s=%v", k, entry.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

// New returns a logger writing to w at the given level name (debug, info, warning, error).
func New(w io.Writer, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(lvl)
	logger.SetFormatter(&Formatter{TimestampFormat: TimestampFormat})
	return logger, nil
}

// NewFile opens path in append mode, creating it if needed, and returns a logger writing to it.
// The returned file must be closed by the caller when the process ends.
func NewFile(path, level string) (*logrus.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening log file %s: %w", path, err)
	}
	logger, err := New(f, level)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, f, nil
}

// Discard returns a logger that drops every entry, handy for tests.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
