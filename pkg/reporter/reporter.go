// Package reporter writes parse results as tree dumps, JSON, XAML, plain
// text or summaries, and diffs tree dumps for compare.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/gobbcode/pkg/bbast"
	"github.com/yaklabco/gobbcode/pkg/runner"
)

// Reporter formats and writes parse results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of files that failed and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// TreeEncoder serializes a single tree, used when writing one output file
// per input.
type TreeEncoder interface {
	Encode(tree *bbast.Node) ([]byte, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = DefaultOptions().ErrorWriter
	}

	format := opts.Format
	if format == "" {
		format = FormatTree
	}

	switch format {
	case FormatTree:
		return NewTreeReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatXAML:
		return NewXAMLReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// NewEncoder returns the per-tree encoder for format. Summary output has
// no per-file form.
func NewEncoder(format Format, opts Options) (TreeEncoder, error) {
	switch format {
	case FormatTree, "":
		return treeEncoder{maxTextWidth: opts.MaxTextWidth}, nil
	case FormatJSON:
		return jsonEncoder{compact: opts.Compact}, nil
	case FormatXAML:
		return xamlEncoder{}, nil
	case FormatText:
		return textEncoder{}, nil
	default:
		return nil, fmt.Errorf("format %s cannot be written per file", format)
	}
}

func countFailures(result *runner.Result) int {
	if result == nil {
		return 0
	}
	return result.Stats.FilesFailed
}
