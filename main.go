package main

import (
	"fmt"
	"log"
	"os"

	"github.com/alecthomas/kong"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/spf13/afero"
	"github.com/svera/epubsearch/internal/logging"
)

var version string = "unknown"

func main() {
	var (
		input CLIInput
		cfg   Config
	)

	kong.Parse(&input,
		kong.Name("epubsearch"),
		kong.Description("Search words, and all their forms, inside an EPUB book."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
	)
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatal(fmt.Sprintf("Error parsing configuration from environment variables: %s", err))
	}

	logger, logFile, err := logging.NewFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}

	exitCode := 0
	if err = run(input, cfg, logger, afero.NewOsFs(), os.Stdout); err != nil {
		logger.Error(err)
		fmt.Fprintln(os.Stderr, err)
		exitCode = 1
	}
	logFile.Close()
	os.Exit(exitCode)
}
