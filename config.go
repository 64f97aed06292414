package main

// Config holds the settings read from environment variables
type Config struct {
	LogFile     string `env:"EPUBSEARCH_LOG_FILE" env-default:"logs"`
	LogLevel    string `env:"EPUBSEARCH_LOG_LEVEL" env-default:"debug"`
	ScratchRoot string `env:"EPUBSEARCH_SCRATCH_ROOT" env-default:"./tmp"`
	DefaultBook string `env:"EPUBSEARCH_DEFAULT_BOOK" env-default:"Sensei4/"`
	SQLiteDSN   string `env:"EPUBSEARCH_SQLITE_DSN" env-default:":memory:"`
	BatchSize   int    `env:"EPUBSEARCH_BATCH_SIZE" env-default:"100"`
}
