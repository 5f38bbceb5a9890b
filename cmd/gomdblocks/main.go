// Package main is the entry point for the gomdblocks CLI.
package main

import (
	"errors"
	"os"

	// Load GOMDBLOCKS_* settings from a .env file in the working directory.
	_ "github.com/joho/godotenv/autoload"

	"github.com/yaklabco/gomdblocks/internal/cli"
	"github.com/yaklabco/gomdblocks/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, cli.ErrConversionFailed) {
		// Per-file failures are already in the report.
		logging.Default().Error("command failed", logging.FieldError, err)
	}

	return cli.ExitCode(err)
}
