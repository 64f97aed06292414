package main

import (
	"errors"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/svera/epubsearch/internal/epub"
	"github.com/svera/epubsearch/internal/index"
	"github.com/svera/epubsearch/internal/output"
	"github.com/svera/epubsearch/internal/session"
	"github.com/svera/epubsearch/internal/stage"
)

var ErrMissingSearch = errors.New("no search term given, use -s or --search")

// Parameters holds what the user asked for
type Parameters struct {
	BookAddress string
	Search      string
	Language    string
	Lexemes     bool
}

// parameters applies defaults to the user input. The default book is used whenever no address is given.
func parameters(input CLIInput, cfg Config) (Parameters, error) {
	params := Parameters{
		BookAddress: input.BookAddress,
		Search:      input.Search,
		Language:    input.Language,
		Lexemes:     input.Lexemes != "",
	}
	if params.BookAddress == "" {
		params.BookAddress = cfg.DefaultBook
	}
	if params.Search == "" {
		return params, ErrMissingSearch
	}
	return params, nil
}

func run(input CLIInput, cfg Config, logger *logrus.Logger, appFs afero.Fs, out io.Writer) error {
	logger.Info(strings.Repeat("*", 20))

	params, err := parameters(input, cfg)
	if err != nil {
		return err
	}
	backend := input.Backend
	if backend == "" {
		backend = index.BackendBleve
	}
	format := input.Output
	if format == "" {
		format = output.FormatJSON
	}

	deps := session.Deps{
		Stager: stage.New(appFs, logger,
			stage.WithScratchRoot(cfg.ScratchRoot),
			stage.WithUniqueScratch(input.UniqueScratch),
		),
		Parser: epub.NewParser(appFs, logger),
		NewIndex: func() (index.Index, error) {
			return index.New(backend, index.Options{
				BatchSize: cfg.BatchSize,
				SQLiteDSN: cfg.SQLiteDSN,
				Logger:    logger,
			})
		},
		Logger: logger,
	}

	return session.Use(params.BookAddress, params.Language, deps, func(s *session.Session) error {
		var result any
		if params.Lexemes {
			result, err = s.SearchLexemes(params.Search)
		} else {
			result, err = s.SearchWord(params.Search)
		}
		if err != nil {
			return err
		}
		return output.Write(out, format, s.Language(), result)
	})
}
