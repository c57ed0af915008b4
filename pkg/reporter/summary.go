package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gobbcode/internal/ui/pretty"
	"github.com/yaklabco/gobbcode/pkg/runner"
)

// SummaryReporter writes only aggregate statistics, preceded by any parse
// errors.
type SummaryReporter struct {
	opts      Options
	styles    *pretty.Styles
	errStyles *pretty.Styles
	bw        *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	return &SummaryReporter{
		opts:      opts,
		styles:    pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		errStyles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.ErrorWriter)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	for _, file := range result.Files {
		if file.Error != nil {
			writeParseError(r.opts, r.errStyles, file)
		}
	}

	fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
	if result.RunID != "" {
		fmt.Fprintln(r.bw, r.styles.Dim.Render("Run "+result.RunID))
	}

	return countFailures(result), nil
}
