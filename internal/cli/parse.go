package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gobbcode/internal/logging"
	"github.com/yaklabco/gobbcode/internal/ui/pretty"
	"github.com/yaklabco/gobbcode/pkg/config"
	"github.com/yaklabco/gobbcode/pkg/fsutil"
	"github.com/yaklabco/gobbcode/pkg/reporter"
	"github.com/yaklabco/gobbcode/pkg/runner"
)

// stdinArg names standard input on the command line.
const stdinArg = "-"

type parseFlags struct {
	format          string
	from            string
	ignore          []string
	quoteBackground string
	compact         bool
}

func newParseCommand() *cobra.Command {
	var cfg config.Config
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse [paths...|-]",
		Short: "Parse markup files into styled trees",
		Long:  parseLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, &cfg, flags)
		},
	}

	addParseFlags(cmd, &cfg, flags)

	return cmd
}

const parseLongDescription = `Parse BBCode-style markup into a tree of runs, line breaks and links.

By default, parses every .bbcode and .bb file in the current directory and
subdirectories. Specify paths to parse specific files or directories, or
"-" to read from standard input. Piped input is read automatically when no
paths are given.

Examples:
  gobbcode parse                          # Parse current directory
  gobbcode parse docs/                    # Parse docs directory
  gobbcode parse intro.bbcode             # Parse single file
  echo '[b]hi[/b]' | gobbcode parse       # Parse standard input
  gobbcode parse --format json            # Output as JSON
  gobbcode parse --format xaml -o out/    # Write one .xaml file per input
  gobbcode parse --from markdown README.md`

func runParse(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *parseFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	if err := applyParseFlags(cmd, cliCfg, flags); err != nil {
		return err
	}

	cfg, workDir, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	logger.Debug("configuration loaded",
		logging.FieldFormat, cfg.Output.Format,
		logging.FieldFrom, cfg.From,
		logging.FieldJobs, cfg.Jobs,
	)

	format, err := reporter.ParseFormat(string(cfg.Output.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}
	if cfg.OutputDir != "" && format.Extension() == "" {
		return fmt.Errorf("%w: format %s cannot be written to an output directory", ErrInvalidUsage, format)
	}

	processor, err := runner.NewProcessor(cfg, logger)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	parseRunner := runner.New(processor)

	var result *runner.Result
	if readsStdin(cmd, args) {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read standard input: %w", err)
		}
		logger.Debug("parsing standard input", "bytes", len(content))
		result = parseRunner.RunSource(ctx, runner.StdinPath, content)
	} else {
		runOpts := runner.OptionsFromConfig(cfg, workDir, args)

		logger.Debug("starting parse run",
			logging.FieldPaths, runOpts.Paths,
			logging.FieldWorkingDir, runOpts.WorkingDir,
			logging.FieldJobs, runOpts.Jobs,
		)

		result, err = parseRunner.Run(ctx, runOpts)
		if err != nil {
			return fmt.Errorf("parse run failed: %w", err)
		}
	}

	logger.Debug("parse run finished",
		logging.FieldRunID, result.RunID,
		logging.FieldFilesParsed, result.Stats.FilesParsed,
		logging.FieldFilesFailed, result.Stats.FilesFailed,
	)

	repOpts := reporter.OptionsFromConfig(cfg)
	repOpts.Writer = cmd.OutOrStdout()
	repOpts.ErrorWriter = cmd.ErrOrStderr()
	repOpts.Format = format
	repOpts.Compact = flags.compact
	repOpts.WorkingDir = workDir

	if cfg.OutputDir != "" {
		err = writeOutputs(ctx, result, cfg.OutputDir, repOpts)
	} else {
		err = report(ctx, result, repOpts)
	}
	if err != nil {
		return err
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrParseFailed
	}
	return nil
}

// applyParseFlags copies explicitly set flags into the CLI config layer
// and rejects unknown enum values.
func applyParseFlags(cmd *cobra.Command, cfg *config.Config, flags *parseFlags) error {
	if cmd.Flags().Changed("format") {
		format := config.OutputFormat(flags.format)
		if !format.IsValid() {
			return fmt.Errorf("%w: unknown format %q", ErrInvalidUsage, flags.format)
		}
		cfg.Output.Format = format
	}
	if cmd.Flags().Changed("from") {
		from := config.InputFormat(flags.from)
		if !from.IsValid() {
			return fmt.Errorf("%w: --from must be bbcode, markdown or auto, got %q", ErrInvalidUsage, flags.from)
		}
		cfg.From = from
	}
	if cmd.Flags().Changed("quote-background") {
		cfg.QuoteBackground = flags.quoteBackground
	}
	if cmd.Flags().Changed("ignore") {
		cfg.Ignore = flags.ignore
	}
	if cfg.Jobs < 0 {
		return fmt.Errorf("%w: --jobs must not be negative", ErrInvalidUsage)
	}
	if cfg.Output.MaxTextWidth < 0 {
		return fmt.Errorf("%w: --max-text-width must not be negative", ErrInvalidUsage)
	}
	return nil
}

func report(ctx context.Context, result *runner.Result, opts reporter.Options) error {
	rep, err := reporter.New(opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}
	if _, err := rep.Report(ctx, result); err != nil {
		logging.FromContext(ctx).Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}
	return nil
}

// writeOutputs writes one encoded file per parsed input under dir. Parse
// errors still go to the error writer, followed by a one-line summary.
func writeOutputs(ctx context.Context, result *runner.Result, dir string, opts reporter.Options) error {
	logger := logging.FromContext(ctx)

	encoder, err := reporter.NewEncoder(opts.Format, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.ErrorWriter))

	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprint(opts.ErrorWriter, styles.FormatParseError(file.Path, file.Error, file.Markup))
			continue
		}

		source := file.Path
		if source == runner.StdinPath {
			source = "stdin"
		}
		target, err := fsutil.OutputPath(dir, file.Root, source, opts.Format.Extension())
		if err != nil {
			return fmt.Errorf("output path for %s: %w", file.Path, err)
		}

		data, err := encoder.Encode(file.Tree)
		if err != nil {
			return fmt.Errorf("encode %s: %w", file.Path, err)
		}

		changed, err := fsutil.WriteAtomicIfChanged(ctx, target, data, fsutil.DefaultFileMode)
		if err != nil {
			return fmt.Errorf("write %s: %w", target, err)
		}
		if changed {
			logger.Info("wrote", logging.FieldInput, file.Path, logging.FieldOutput, target)
		} else {
			logger.Debug("unchanged", logging.FieldOutput, target)
		}
	}

	summaryStyles := pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer))
	if _, err := fmt.Fprintln(opts.Writer, summaryStyles.FormatSummaryOneLine(result.Stats)); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

// readsStdin reports whether input comes from standard input: either "-"
// was given, or no paths were given and stdin is a pipe or file.
func readsStdin(cmd *cobra.Command, args []string) bool {
	if len(args) == 1 && args[0] == stdinArg {
		return true
	}
	if len(args) > 0 {
		return false
	}

	file, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return false
	}
	if term.IsTerminal(int(file.Fd())) {
		return false
	}
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice == 0
}

func addParseFlags(cmd *cobra.Command, cfg *config.Config, flags *parseFlags) {
	cmd.Flags().StringVar(&flags.format, "format", string(config.FormatTree),
		"output format: tree, json, xaml, text, summary")
	cmd.Flags().StringVar(&flags.from, "from", string(config.InputBBCode), "input markup: bbcode, markdown, auto")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringVar(&flags.quoteBackground, "quote-background", config.DefaultQuoteBackground,
		"background color inside [quote] tags, or \"none\"")
	cmd.Flags().StringVarP(&cfg.OutputDir, "output-dir", "o", "", "write one output file per input into this directory")
	cmd.Flags().IntVar(&cfg.Output.MaxTextWidth, "max-text-width", 0, "truncate run text in tree output (0 = off)")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
}
