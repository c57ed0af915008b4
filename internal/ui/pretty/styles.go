// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/gobbcode/pkg/config"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Tree node labels
	Span      lipgloss.Style
	Run       lipgloss.Style
	LineBreak lipgloss.Style
	Link      lipgloss.Style

	// Tree node contents
	Text      lipgloss.Style
	AttrKey   lipgloss.Style
	AttrValue lipgloss.Style
	Command   lipgloss.Style

	// Parse errors
	Error      lipgloss.Style
	FilePath   lipgloss.Style
	Message    lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	// Diff styles
	DiffHeader  lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style
	TableLegend    lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

func newColorStyles() *Styles {
	return &Styles{
		Span:      lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
		Run:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		LineBreak: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Link:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Underline(true),

		Text:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		AttrKey:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		AttrValue: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Command:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Italic(true),

		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		FilePath:   lipgloss.NewStyle().Bold(true),
		Message:    lipgloss.NewStyle(),
		SourceLine: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Caret:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffAdd:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		DiffRemove:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		DiffContext: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		TableLegend:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Span:           plain,
		Run:            plain,
		LineBreak:      plain,
		Link:           plain,
		Text:           plain,
		AttrKey:        plain,
		AttrValue:      plain,
		Command:        plain,
		Error:          plain,
		FilePath:       plain,
		Message:        plain,
		SourceLine:     plain,
		Caret:          plain,
		DiffHeader:     plain,
		DiffAdd:        plain,
		DiffRemove:     plain,
		DiffContext:    plain,
		SummaryTitle:   plain,
		SummaryValue:   plain,
		Success:        plain,
		Failure:        plain,
		TableHeader:    plain,
		TableSeparator: plain,
		TableLegend:    plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode config.ColorMode, writer io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		return IsTerminal(writer)
	}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
