package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/svera/epubsearch/internal/logging"
)

func TestFormat(t *testing.T) {
	for _, tcase := range []struct {
		name     string
		level    logrus.Level
		message  string
		fields   logrus.Fields
		expected string
	}{
		{
			"Info entry without fields",
			logrus.InfoLevel,
			"Indexing",
			nil,
			"INFO:2026-10-19 10:04:05,120 Indexing\n",
		},
		{
			"Debug entry with fields sorted by key",
			logrus.DebugLevel,
			"Search word",
			logrus.Fields{"word": "cat", "backend": "bleve"},
			"DEBUG:2026-10-19 10:04:05,120 Search word backend=bleve word=cat\n",
		},
		{
			"Warning level is spelled out",
			logrus.WarnLevel,
			"Careful",
			nil,
			"WARNING:2026-10-19 10:04:05,120 Careful\n",
		},
	} {
		t.Run(tcase.name, func(t *testing.T) {
			entry := &logrus.Entry{
				Level:   tcase.level,
				Message: tcase.message,
				Data:    tcase.fields,
				Time:    time.Date(2026, 10, 19, 10, 4, 5, 120*int(time.Millisecond), time.UTC),
			}
			f := &logging.Formatter{}
			out, err := f.Format(entry)
			if err != nil {
				t.Fatalf("Unexpected error: %s", err)
			}
			if string(out) != tcase.expected {
				t.Errorf("Wrong line formatted, expected %q, got %q", tcase.expected, string(out))
			}
		})
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(&buf, "info")
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	logger.Debug("hidden")
	logger.Info("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("Debug entry should have been filtered out, got %q", buf.String())
	}
	if !strings.HasPrefix(buf.String(), "INFO:") {
		t.Errorf("Expected an INFO line, got %q", buf.String())
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := logging.New(&bytes.Buffer{}, "chatty"); err == nil {
		t.Errorf("Expected an error for an unknown level")
	}
}

func TestNewFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs")
	for _, msg := range []string{"first", "second"} {
		logger, closer, err := logging.NewFile(path, "debug")
		if err != nil {
			t.Fatalf("Unexpected error: %s", err)
		}
		logger.Info(msg)
		closer.Close()
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %q", len(lines), content)
	}
	if !strings.HasSuffix(lines[0], " first") || !strings.HasSuffix(lines[1], " second") {
		t.Errorf("Lines not appended in order: %q", lines)
	}
}
