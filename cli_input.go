package main

import "github.com/alecthomas/kong"

// CLIInput stores all configuration flags that can be passed to the application
type CLIInput struct {
	Version kong.VersionFlag `short:"v" name:"version" help:"Get version number."`
	// BookAddress holds the path to an EPUB file or to a directory containing an already extracted one
	BookAddress string `env:"BOOK_ADDRESS" short:"b" name:"book-address" help:"Path to an EPUB file or to a directory containing an extracted EPUB."`
	// Search is the word to look for
	Search string `short:"s" name:"search" help:"Word to look for."`
	// Language is the two-letter code of the book language. If not set, it is read from the book metadata or guessed from its content
	Language string `name:"lang" help:"Language of the book, e. g. ru or en. Taken from the book metadata if not set."`
	// Lexemes switches to look for every form of the search word when it holds any value
	Lexemes string `name:"lexemes" help:"Any non-empty value looks for every form of the word instead of the word itself."`
	// Backend selects the full text search engine
	Backend string `name:"backend" default:"bleve" enum:"bleve,sqlite" help:"Full text search engine to use (bleve or sqlite)."`
	// Output sets the format of the printed results
	Output string `short:"o" name:"output" default:"json" enum:"json,yaml,text" help:"Format of the printed results (json, yaml or text)."`
	// UniqueScratch adds a random suffix to the directory where archives are extracted, so several
	// instances can search the same book at the same time
	UniqueScratch bool `name:"unique-scratch" help:"Extract archives to a directory unique to this run."`
}
