package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gobbcode/internal/ui/pretty"
	"github.com/yaklabco/gobbcode/pkg/bbast"
	"github.com/yaklabco/gobbcode/pkg/runner"
)

// TreeReporter writes an indented dump of every parsed tree.
type TreeReporter struct {
	opts      Options
	styles    *pretty.Styles
	errStyles *pretty.Styles
	bw        *bufio.Writer
}

// NewTreeReporter creates a new tree reporter.
func NewTreeReporter(opts Options) *TreeReporter {
	return &TreeReporter{
		opts:      opts,
		styles:    pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		errStyles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.ErrorWriter)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TreeReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No files to parse."))
		}
		return 0, nil
	}

	multi := len(result.Files) > 1
	for _, file := range result.Files {
		if file.Error != nil {
			// Keep stdout and stderr ordered when they share a terminal.
			if err := r.bw.Flush(); err != nil {
				return 0, err
			}
			writeParseError(r.opts, r.errStyles, file)
			continue
		}

		if multi {
			nodes := 0
			for _, n := range bbast.Count(file.Tree) {
				nodes += n
			}
			fmt.Fprintln(r.bw, r.styles.FormatFileHeader(r.opts.displayPath(file.Path), nodes))
		}
		fmt.Fprint(r.bw, r.styles.FormatTree(file.Tree, r.opts.MaxTextWidth))
		if multi {
			fmt.Fprintln(r.bw)
		}
	}

	if r.opts.ShowSummary && multi {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return countFailures(result), nil
}

// DumpTree renders tree as the uncolored dump used by the tree format and
// by compare.
func DumpTree(tree *bbast.Node, maxTextWidth int) string {
	return pretty.NewStyles(false).FormatTree(tree, maxTextWidth)
}

type treeEncoder struct {
	maxTextWidth int
}

func (e treeEncoder) Encode(tree *bbast.Node) ([]byte, error) {
	return []byte(DumpTree(tree, e.maxTextWidth)), nil
}

func writeParseError(opts Options, styles *pretty.Styles, file runner.FileOutcome) {
	fmt.Fprint(opts.ErrorWriter, styles.FormatParseError(opts.displayPath(file.Path), file.Error, file.Markup))
}
