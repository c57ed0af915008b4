// Package cli provides the Cobra command structure for gobbcode.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gobbcode/internal/logging"
	"github.com/yaklabco/gobbcode/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root gobbcode command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "gobbcode",
		Short: "Parse BBCode-style markup into a styled inline tree",
		Long: `gobbcode parses BBCode-style markup into a tree of styled runs, line
breaks and hyperlinks.

It understands bold, italic, underline, strikethrough, color, size, quote,
url, lists and line breaks. Links can invoke registered commands with an
optional parameter and a named target element. Trees can be printed as an
indented dump, JSON, XAML or plain text, and Markdown input is converted on
the way in.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
			cmd.SetContext(logging.WithLogger(commandContext(cmd), logging.Default()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", string(config.ColorAuto),
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newTagsCommand())
	rootCmd.AddCommand(newCompareCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(config.ColorMode(color), os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
