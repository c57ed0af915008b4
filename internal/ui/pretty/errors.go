package pretty

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/gobbcode/pkg/bbcode"
)

// ParseErrorDetail is the position and message extracted from a parse
// failure. Line and Column are 0 when the error carries no position.
type ParseErrorDetail struct {
	Line    int
	Column  int
	Message string
}

// DescribeError extracts the position and message of err, unwrapping any
// path context added by callers.
func DescribeError(err error) ParseErrorDetail {
	var (
		lexErr   *bbcode.LexError
		tokenErr *bbcode.UnexpectedTokenError
		convErr  *bbcode.ConversionError
	)
	switch {
	case errors.As(err, &lexErr):
		return ParseErrorDetail{Line: lexErr.Line, Column: lexErr.Column, Message: lexErr.Message}
	case errors.As(err, &tokenErr):
		return ParseErrorDetail{
			Line:    tokenErr.Line,
			Column:  tokenErr.Column,
			Message: "unexpected token " + tokenErr.Token.String(),
		}
	case errors.As(err, &convErr):
		return ParseErrorDetail{Message: convErr.Error()}
	default:
		return ParseErrorDetail{Message: err.Error()}
	}
}

// FormatParseError formats a failed parse for terminal output. source is
// the rejected markup; when it is non-empty and the error has a position,
// the offending line is shown with a caret.
func (s *Styles) FormatParseError(path string, err error, source string) string {
	detail := DescribeError(err)

	var builder strings.Builder

	location := s.FilePath.Render(path)
	if detail.Line > 0 {
		location += fmt.Sprintf(":%d:%d", detail.Line, detail.Column)
	}

	builder.WriteString(fmt.Sprintf("  %s  %s  %s\n",
		location,
		s.Error.Render("error"),
		s.Message.Render(detail.Message),
	))

	if line, ok := sourceLine(source, detail.Line); ok {
		builder.WriteString(s.FormatSourceContext(line, detail.Column))
	}

	return builder.String()
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, nodeCount int) string {
	header := s.FilePath.Render(path)
	if nodeCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d nodes)", nodeCount))
	}
	return header
}

// sourceLine returns the 1-based line n of source, splitting on the same
// line breaks the lexer recognizes. Columns count bytes, so tabs and
// multi-byte runes before the error shift the caret.
func sourceLine(source string, n int) (string, bool) {
	if source == "" || n <= 0 {
		return "", false
	}
	normalized := strings.ReplaceAll(source, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	lines := strings.Split(normalized, "\n")
	if n > len(lines) {
		return "", false
	}
	return lines[n-1], true
}
