package pretty

import (
	"strconv"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/yaklabco/gobbcode/pkg/bbast"
)

const (
	treeIndent     = "  "
	truncationTail = "…"
)

// FormatTree renders a tree one node per line, children indented under
// their parent. Run text longer than maxTextWidth cells is truncated; 0
// disables truncation. With color disabled the output is stable and is
// what compare diffs.
func (s *Styles) FormatTree(root *bbast.Node, maxTextWidth int) string {
	var builder strings.Builder
	bbast.WalkWithDepth(root, func(n *bbast.Node, depth int) {
		builder.WriteString(strings.Repeat(treeIndent, depth))
		builder.WriteString(s.FormatNode(n, maxTextWidth))
		builder.WriteString("\n")
	}, nil)
	return builder.String()
}

// FormatNode renders a single node label without its children.
func (s *Styles) FormatNode(n *bbast.Node, maxTextWidth int) string {
	var builder strings.Builder

	switch n.Kind {
	case bbast.NodeSpan:
		builder.WriteString(s.Span.Render("Span"))
	case bbast.NodeRun:
		builder.WriteString(s.Run.Render("Run"))
		builder.WriteString(" ")
		builder.WriteString(s.Text.Render(strconv.Quote(Truncate(n.Text, maxTextWidth))))
		for _, attr := range n.Style.Attributes() {
			s.writeAttr(&builder, attr[0], attr[1])
		}
	case bbast.NodeLineBreak:
		builder.WriteString(s.LineBreak.Render("LineBreak"))
	case bbast.NodeLink:
		builder.WriteString(s.Link.Render("Link"))
		s.writeLinkAttrs(&builder, n.Link)
	default:
		builder.WriteString(n.Kind.String())
	}

	return builder.String()
}

func (s *Styles) writeLinkAttrs(builder *strings.Builder, link *bbast.LinkAttrs) {
	if link == nil {
		return
	}
	if link.URI != "" {
		s.writeAttr(builder, "uri", strconv.Quote(link.URI))
	}
	if link.Parameter != nil {
		s.writeAttr(builder, "parameter", strconv.Quote(*link.Parameter))
	}
	if link.Command != nil {
		builder.WriteString(" ")
		builder.WriteString(s.AttrKey.Render("command="))
		builder.WriteString(s.Command.Render(strconv.Quote(link.Command.Name)))
	}
	if link.TargetName != nil {
		s.writeAttr(builder, "target", strconv.Quote(*link.TargetName))
	}
	if link.Target != nil {
		s.writeAttr(builder, "resolved", "true")
		if link.Target.Kind != "" {
			s.writeAttr(builder, "kind", strconv.Quote(link.Target.Kind))
		}
	}
	if link.Foreground != nil {
		s.writeAttr(builder, "foreground", link.Foreground.Hex())
	}
}

func (s *Styles) writeAttr(builder *strings.Builder, key, value string) {
	builder.WriteString(" ")
	builder.WriteString(s.AttrKey.Render(key + "="))
	builder.WriteString(s.AttrValue.Render(value))
}

// Truncate shortens text to at most width terminal cells, marking the cut
// with an ellipsis. A width of 0 or less returns text unchanged.
func Truncate(text string, width int) string {
	if width <= 0 || ansi.PrintableRuneWidth(text) <= width {
		return text
	}
	return truncate.StringWithTail(text, uint(width), truncationTail)
}
