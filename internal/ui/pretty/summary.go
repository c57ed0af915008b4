package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gobbcode/pkg/bbast"
	"github.com/yaklabco/gobbcode/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files parsed, 1 failed, 42 nodes, 5 links (2 commands)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var parts []string

	fileWord := wordFiles
	if stats.FilesParsed == 1 {
		fileWord = wordFile
	}

	if stats.FilesFailed == 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s parsed", stats.FilesParsed, fileWord)))
	} else {
		parts = append(parts,
			fmt.Sprintf("%d %s parsed", stats.FilesParsed, fileWord),
			s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesFailed)),
		)
	}

	parts = append(parts, fmt.Sprintf("%d nodes", stats.NodesTotal))

	if stats.LinksTotal > 0 {
		links := fmt.Sprintf("%d links", stats.LinksTotal)
		if stats.CommandLinks > 0 {
			links += s.Dim.Render(fmt.Sprintf(" (%d commands)", stats.CommandLinks))
		}
		parts = append(parts, links)
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files discovered:  " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")
	builder.WriteString("  Files parsed:      " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesParsed)) + "\n")

	if stats.FilesFailed > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesFailed)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Total nodes:       " +
		s.SummaryValue.Render(strconv.Itoa(stats.NodesTotal)) + "\n")

	for _, kind := range []bbast.NodeKind{bbast.NodeRun, bbast.NodeLink, bbast.NodeLineBreak} {
		if n := stats.NodesByKind[kind]; n > 0 {
			label := fmt.Sprintf("    %s:", kind)
			builder.WriteString(fmt.Sprintf("%-21s", label) + s.SummaryValue.Render(strconv.Itoa(n)) + "\n")
		}
	}

	if stats.CommandLinks > 0 {
		builder.WriteString("  Command links:     " +
			s.SummaryValue.Render(strconv.Itoa(stats.CommandLinks)) + "\n")
	}

	builder.WriteString("\n")

	if stats.FilesFailed > 0 {
		builder.WriteString(s.Failure.Render("Parse failed"))
	} else {
		builder.WriteString(s.Success.Render("Parse succeeded"))
	}
	builder.WriteString("\n")

	return builder.String()
}
