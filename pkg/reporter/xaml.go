package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/yaklabco/gobbcode/internal/ui/pretty"
	"github.com/yaklabco/gobbcode/pkg/bbast"
	"github.com/yaklabco/gobbcode/pkg/runner"
)

// XAMLNamespace is the presentation namespace declared on the root Span.
const XAMLNamespace = "http://schemas.microsoft.com/winfx/2006/xaml/presentation"

const xamlIndent = 2

// XAMLReporter writes each tree as a XAML inline fragment rooted at a Span.
type XAMLReporter struct {
	opts      Options
	errStyles *pretty.Styles
	bw        *bufio.Writer
}

// NewXAMLReporter creates a new XAML reporter.
func NewXAMLReporter(opts Options) *XAMLReporter {
	return &XAMLReporter{
		opts:      opts,
		errStyles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.ErrorWriter)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. With more than one file, each fragment is
// preceded by a comment naming its source.
func (r *XAMLReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
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

		doc := NewXAMLDocument(file.Tree)
		if multi {
			doc.InsertChildAt(0, etree.NewComment(" "+r.opts.displayPath(file.Path)+" "))
		}
		doc.Indent(xamlIndent)
		if _, err := doc.WriteTo(r.bw); err != nil {
			return 0, fmt.Errorf("write XAML: %w", err)
		}
	}

	return countFailures(result), nil
}

// NewXAMLDocument builds the XAML element tree for a parsed tree.
func NewXAMLDocument(tree *bbast.Node) *etree.Document {
	doc := etree.NewDocument()
	root := doc.CreateElement("Span")
	root.CreateAttr("xmlns", XAMLNamespace)
	for _, child := range tree.Children {
		appendXAML(root, child)
	}
	return doc
}

func appendXAML(parent *etree.Element, n *bbast.Node) {
	switch n.Kind {
	case bbast.NodeRun:
		run := parent.CreateElement("Run")
		writeXAMLStyle(run, n.Style)
		run.CreateAttr("Text", n.Text)
	case bbast.NodeLineBreak:
		parent.CreateElement("LineBreak")
	case bbast.NodeLink:
		link := parent.CreateElement("Hyperlink")
		writeXAMLLink(link, n.Link)
		for _, child := range n.Children {
			appendXAML(link, child)
		}
	case bbast.NodeSpan:
		span := parent.CreateElement("Span")
		for _, child := range n.Children {
			appendXAML(span, child)
		}
	}
}

func writeXAMLStyle(el *etree.Element, s *bbast.Style) {
	if s.IsZero() {
		return
	}
	if s.Bold {
		el.CreateAttr("FontWeight", "Bold")
	}
	if s.Italic {
		el.CreateAttr("FontStyle", "Italic")
	}
	switch s.Decoration {
	case bbast.DecorationUnderline:
		el.CreateAttr("TextDecorations", "Underline")
	case bbast.DecorationStrikethrough:
		el.CreateAttr("TextDecorations", "Strikethrough")
	}
	if s.FontSize != nil {
		el.CreateAttr("FontSize", strconv.FormatFloat(*s.FontSize, 'g', -1, 64))
	}
	if s.Foreground != nil {
		el.CreateAttr("Foreground", xamlColor(*s.Foreground))
	}
	if s.Background != nil {
		el.CreateAttr("Background", xamlColor(*s.Background))
	}
}

func writeXAMLLink(el *etree.Element, l *bbast.LinkAttrs) {
	if l == nil {
		return
	}
	if l.IsCommand() {
		el.CreateAttr("Command", l.Command.Name)
	} else if l.URI != "" {
		el.CreateAttr("NavigateUri", l.URI)
	}
	if l.Parameter != nil {
		el.CreateAttr("CommandParameter", *l.Parameter)
	}
	if l.Target != nil {
		el.CreateAttr("CommandTarget", "{Binding ElementName="+l.Target.Name+"}")
	}
	if l.Foreground != nil {
		el.CreateAttr("Foreground", xamlColor(*l.Foreground))
	}
}

// xamlColor formats c as #AARRGGBB, the form XAML brushes accept.
func xamlColor(c bbast.Color) string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.A, c.R, c.G, c.B)
}

type xamlEncoder struct{}

func (xamlEncoder) Encode(tree *bbast.Node) ([]byte, error) {
	doc := NewXAMLDocument(tree)
	doc.Indent(xamlIndent)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("write XAML: %w", err)
	}
	return out, nil
}
