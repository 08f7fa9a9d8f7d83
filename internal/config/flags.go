package config

import (
	"flag"
	"io"
	"os"

	"github.com/dmitrijs2005/promptkeeper/internal/flagx"
)

var knownFlags = []string{"d", "k", "t", "m", "o", "f", "e", "l", "s3-bucket"}

// parseFlags populates Config fields from command-line flags. Current values
// of cfg act as flag defaults, so flags only override what they name.
//
// The function filters os.Args to the flags it knows about (see knownFlags)
// so that -c/-config and any future flag sets can share the command line.
// It panics on malformed values.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the SQLite database file")
	fs.StringVar(&cfg.StorageKey, "k", cfg.StorageKey, "storage key for the prompt collection")
	fs.BoolVar(&cfg.TrackMetadata, "t", cfg.TrackMetadata, "track model metadata and token estimates")
	fs.StringVar(&cfg.DefaultModel, "m", cfg.DefaultModel, "default model name")
	fs.StringVar(&cfg.ExportDir, "o", cfg.ExportDir, "directory for export files")
	fs.StringVar(&cfg.ExportFormat, "f", cfg.ExportFormat, "export format: json or yaml")
	fs.BoolVar(&cfg.Ephemeral, "e", cfg.Ephemeral, "keep everything in memory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.S3.Bucket, "s3-bucket", cfg.S3.Bucket, "S3 bucket for exports")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
