package reporter

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gobbcode/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for parse errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	Color config.ColorMode

	// MaxTextWidth truncates run text in tree output. 0 disables it.
	MaxTextWidth int

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// Compact uses minified output where applicable.
	Compact bool

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      FormatTree,
		Color:       config.ColorAuto,
		ShowSummary: true,
	}
}

// OptionsFromConfig derives reporter options from the output section of a
// resolved config.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	if cfg == nil {
		return opts
	}
	if cfg.Output.Format != "" {
		opts.Format = Format(cfg.Output.Format)
	}
	if cfg.Output.Color != "" {
		opts.Color = cfg.Output.Color
	}
	opts.MaxTextWidth = cfg.Output.MaxTextWidth
	return opts
}

// displayPath makes path relative to WorkingDir when it lives under it.
func (o Options) displayPath(path string) string {
	if o.WorkingDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(o.WorkingDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
