package pretty

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/ansi"

	"github.com/yaklabco/gobbcode/pkg/bbcode"
)

// Table formatting constants.
const (
	tablePadding        = 2
	tableColumnCount    = 4 // TAG, ATTRIBUTE, DESCRIPTION, EXAMPLE
	minTagWidth         = 5
	minAttributeWidth   = 9
	minDescriptionWidth = 30
	minExampleWidth     = 12
	heavySeparator      = "="
	defaultTermWidth    = 100
)

// TagTableFormatter formats the supported tag reference as a table.
type TagTableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTagTableFormatter creates a table formatter constrained to termWidth
// columns. A non-positive width falls back to 100.
func NewTagTableFormatter(styles *Styles, termWidth int) *TagTableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TagTableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

type tagColumnWidths struct {
	tag         int
	attribute   int
	description int
	example     int
}

func (w tagColumnWidths) total() int {
	return w.tag + w.attribute + w.description + w.example + tablePadding*tableColumnCount
}

// FormatTags formats tag reference rows.
func (t *TagTableFormatter) FormatTags(tags []bbcode.TagInfo) string {
	if len(tags) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(tags)

	var builder strings.Builder

	header := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s",
		widths.tag, "TAG",
		widths.attribute, "ATTRIBUTE",
		widths.description, "DESCRIPTION",
		widths.example, "EXAMPLE",
	)
	builder.WriteString(t.styles.TableHeader.Render(header))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	for _, info := range tags {
		attribute := info.Attribute
		if attribute == "" {
			attribute = "-"
		}
		row := fmt.Sprintf(" %s  %s  %s  %s",
			pad(t.styles.Bold.Render(Truncate(info.Name, widths.tag)), widths.tag),
			pad(Truncate(attribute, widths.attribute), widths.attribute),
			pad(Truncate(info.Description, widths.description), widths.description),
			t.styles.Dim.Render(Truncate(info.Example, widths.example)),
		)
		builder.WriteString(strings.TrimRight(row, " "))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")
	builder.WriteString(t.styles.TableLegend.Render(
		fmt.Sprintf(" %d tags. Tag names are case-insensitive; unknown tags are ignored.", len(tags)),
	))
	builder.WriteString("\n")

	return builder.String()
}

func (t *TagTableFormatter) calculateColumnWidths(tags []bbcode.TagInfo) tagColumnWidths {
	widths := tagColumnWidths{
		tag:         minTagWidth,
		attribute:   minAttributeWidth,
		description: minDescriptionWidth,
		example:     minExampleWidth,
	}

	for _, info := range tags {
		widths.tag = max(widths.tag, ansi.PrintableRuneWidth(info.Name))
		widths.attribute = max(widths.attribute, ansi.PrintableRuneWidth(info.Attribute))
		widths.description = max(widths.description, ansi.PrintableRuneWidth(info.Description))
		widths.example = max(widths.example, ansi.PrintableRuneWidth(info.Example))
	}

	// Shrink the description first, then the example.
	if excess := widths.total() - t.termWidth; excess > 0 {
		widths.description = max(minDescriptionWidth, widths.description-excess)
	}
	if excess := widths.total() - t.termWidth; excess > 0 {
		widths.example = max(minExampleWidth, widths.example-excess)
	}

	return widths
}

func (t *TagTableFormatter) formatSeparator(widths tagColumnWidths) string {
	return t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, widths.total()))
}

// pad right-pads styled text to width visible cells.
func pad(text string, width int) string {
	if gap := width - ansi.PrintableRuneWidth(text); gap > 0 {
		return text + strings.Repeat(" ", gap)
	}
	return text
}
