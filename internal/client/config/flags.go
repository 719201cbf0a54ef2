package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/arnorgym/internal/flagx"
)

// parseFlags overlays cfg with the command-line flags it knows about; other
// arguments are ignored. Panics on a malformed flag.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-s", "-p", "-e", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.StringVar(&cfg.StorageDSN, "d", cfg.StorageDSN, "SQLite file of the durable storage")
	fs.StringVar(&cfg.SessionDSN, "s", cfg.SessionDSN, "SQLite DSN of the session storage")
	fs.StringVar(&cfg.PostgresDSN, "p", cfg.PostgresDSN, "PostgreSQL DSN of the durable storage")
	fs.StringVar(&cfg.ExportURI, "e", cfg.ExportURI, "default export location")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
