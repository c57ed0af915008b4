package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gobbcode/internal/ui/pretty"
	"github.com/yaklabco/gobbcode/pkg/bbast"
	"github.com/yaklabco/gobbcode/pkg/runner"
)

// TextReporter writes the visible text of every tree: runs concatenated
// and line breaks as newlines, with all styling dropped.
type TextReporter struct {
	opts      Options
	styles    *pretty.Styles
	errStyles *pretty.Styles
	bw        *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:      opts,
		styles:    pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		errStyles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.ErrorWriter)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	multi := len(result.Files) > 1
	for _, file := range result.Files {
		if file.Error != nil {
			if err := r.bw.Flush(); err != nil {
				return 0, err
			}
			writeParseError(r.opts, r.errStyles, file)
			continue
		}

		if multi {
			fmt.Fprintln(r.bw, r.styles.FormatFileHeader(r.opts.displayPath(file.Path), 0))
		}
		fmt.Fprintln(r.bw, bbast.VisibleText(file.Tree))
	}

	return countFailures(result), nil
}

type textEncoder struct{}

func (textEncoder) Encode(tree *bbast.Node) ([]byte, error) {
	return []byte(bbast.VisibleText(tree) + "\n"), nil
}
