package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gobbcode/internal/logging"
	"github.com/yaklabco/gobbcode/internal/ui/pretty"
	"github.com/yaklabco/gobbcode/pkg/config"
	"github.com/yaklabco/gobbcode/pkg/reporter"
	"github.com/yaklabco/gobbcode/pkg/runner"
)

type compareFlags struct {
	from string
}

func newCompareCommand() *cobra.Command {
	var cfg config.Config
	flags := &compareFlags{}

	cmd := &cobra.Command{
		Use:   "compare <a> <b>",
		Short: "Diff the trees of two markup files",
		Long: `Parse two files and print a line diff of their tree dumps. Use "-" for
one of the files to read it from standard input.

Exits with status 1 when the trees differ or either file fails to parse.

Examples:
  gobbcode compare old.bbcode new.bbcode
  gobbcode compare --from markdown notes.md notes.bbcode`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("from") {
				from := config.InputFormat(flags.from)
				if !from.IsValid() {
					return fmt.Errorf("%w: --from must be bbcode, markdown or auto, got %q", ErrInvalidUsage, flags.from)
				}
				cfg.From = from
			}
			return runCompare(cmd, args[0], args[1], &cfg)
		},
	}

	cmd.Flags().StringVar(&flags.from, "from", string(config.InputBBCode), "input markup: bbcode, markdown, auto")
	cmd.Flags().IntVar(&cfg.Output.MaxTextWidth, "max-text-width", 0, "truncate run text in the dumps (0 = off)")

	return cmd
}

func runCompare(cmd *cobra.Command, pathA, pathB string, cliCfg *config.Config) error {
	ctx := commandContext(cmd)

	if pathA == stdinArg && pathB == stdinArg {
		return fmt.Errorf("%w: only one side of compare can read standard input", ErrInvalidUsage)
	}

	cfg, _, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	processor, err := runner.NewProcessor(cfg, logging.FromContext(ctx))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	errStyles := pretty.NewStyles(pretty.IsColorEnabled(cfg.Output.Color, cmd.ErrOrStderr()))

	outcomeA, err := readForCompare(ctx, cmd, processor, pathA)
	if err != nil {
		return err
	}
	outcomeB, err := readForCompare(ctx, cmd, processor, pathB)
	if err != nil {
		return err
	}

	failed := false
	for _, outcome := range []runner.FileOutcome{outcomeA, outcomeB} {
		if outcome.Error != nil {
			fmt.Fprint(cmd.ErrOrStderr(), errStyles.FormatParseError(outcome.Path, outcome.Error, outcome.Markup))
			failed = true
		}
	}
	if failed {
		return ErrParseFailed
	}

	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(cfg.Output.Color, out))

	diff := reporter.DiffTrees(outcomeA.Tree, outcomeB.Tree, cfg.Output.MaxTextWidth)
	if diff.Equal() {
		logging.FromContext(ctx).Debug("trees are identical", logging.FieldFiles, []string{pathA, pathB})
		_, err := fmt.Fprintln(out, styles.Success.Render("trees are identical"))
		return err
	}

	if err := reporter.WriteDiff(out, styles, diff, displayName(pathA), displayName(pathB)); err != nil {
		return err
	}
	return ErrTreesDiffer
}

// readForCompare reads and parses one side of a comparison. Read errors
// are returned; parse errors are left on the outcome for rendering.
func readForCompare(ctx context.Context, cmd *cobra.Command, processor *runner.Processor, path string) (runner.FileOutcome, error) {
	if path == stdinArg {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return runner.FileOutcome{}, fmt.Errorf("read standard input: %w", err)
		}
		return processor.ProcessSource(ctx, runner.StdinPath, content), nil
	}

	outcome := processor.ProcessFile(ctx, runner.Source{Path: path})
	if outcome.Error != nil && outcome.Info == nil {
		return outcome, outcome.Error
	}
	return outcome, nil
}

func displayName(path string) string {
	if path == stdinArg {
		return runner.StdinPath
	}
	return path
}
