package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gobbcode/internal/logging"
	"github.com/yaklabco/gobbcode/pkg/config"
	"github.com/yaklabco/gobbcode/pkg/fsutil"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force   bool
	minimal bool
	format  string
	output  string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gobbcode configuration file",
		Long: `Create a new .gobbcode.yml configuration file in the current directory.
The template documents the quote background, file extensions, output options,
and example command and element registrations.

Examples:
  gobbcode init                      Create .gobbcode.yml
  gobbcode init --minimal            Leave out the command and element examples
  gobbcode init --format toml        Create .gobbcode.toml instead
  gobbcode init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.minimal, "minimal", false, "Omit the command and element examples")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .gobbcode.yml or .gobbcode.toml)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive(cmd.OutOrStdout())

	if flags.format != "yaml" && flags.format != "toml" {
		return fmt.Errorf("%w: invalid format %q: must be yaml or toml", ErrInvalidUsage, flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".gobbcode.yml"
		if flags.format == "toml" {
			outputPath = ".gobbcode.toml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrInvalidUsage, outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Format:  flags.format,
		Minimal: flags.minimal,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(commandContext(cmd), absPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'gobbcode tags' to see the supported markup")

	return nil
}
