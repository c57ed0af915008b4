// Package main is the entry point for the gobbcode CLI.
package main

import (
	"os"

	"github.com/yaklabco/gobbcode/internal/cli"
	"github.com/yaklabco/gobbcode/internal/logging"
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

	if err := rootCmd.Execute(); err != nil {
		// Parse failures and diffs were already written; only the exit code remains.
		if !cli.IsReported(err) {
			logging.Default().Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCodeFromError(err)
	}

	return cli.ExitSuccess
}
