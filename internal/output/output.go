// Package output prints search results in the format requested by the user.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/svera/epubsearch/internal/i18n"
	"github.com/svera/epubsearch/internal/index"
	"github.com/svera/epubsearch/internal/session"
	"gopkg.in/yaml.v2"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

var ErrUnknownFormat = errors.New("unknown output format")

// Write prints v, an index.Result or a session.LexemeResult, to w.
// lang is used to translate the text format.
func Write(w io.Writer, format, lang string, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	case FormatYAML:
		out, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	case FormatText:
		return writeText(w, lang, v)
	}
	return fmt.Errorf("%w '%s'", ErrUnknownFormat, format)
}

func writeText(w io.Writer, lang string, v any) error {
	p := i18n.Printer(lang)
	var b strings.Builder

	switch res := v.(type) {
	case index.Result:
		if len(res.Hits) == 0 {
			b.WriteString(p.Sprintf("No matches for \"%s\"", res.Query))
			b.WriteByte('\n')
			break
		}
		b.WriteString(p.Sprintf("%d chapters contain \"%s\"", len(res.Hits), res.Query))
		b.WriteByte('\n')
		strict := bluemonday.StrictPolicy()
		for _, hit := range res.Hits {
			fmt.Fprintf(&b, "%s\t%s\n", hit.BaseCFI, hit.Title)
			for _, fragment := range hit.Fragments {
				fmt.Fprintf(&b, "\t%s\n", strings.Join(strings.Fields(html.UnescapeString(strict.Sanitize(fragment))), " "))
			}
		}
	case session.LexemeResult:
		b.WriteString(p.Sprintf("Forms of \"%s\": %s", res.Word, strings.Join(res.Lexemes, ", ")))
		b.WriteByte('\n')
		b.WriteString(p.Sprintf("%d locations found", len(res.Results)))
		b.WriteByte('\n')
		for _, location := range res.Results {
			b.WriteString(location)
			b.WriteByte('\n')
		}
	default:
		return fmt.Errorf("cannot print %T as text", v)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
