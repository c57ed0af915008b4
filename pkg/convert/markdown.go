// Package convert turns Markdown into bbcode markup so Markdown sources can
// be fed through the bbcode parser.
package convert

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// headingSizes maps heading levels to font sizes.
//
//nolint:gochecknoglobals // Read-only lookup table.
var headingSizes = map[int]int{1: 24, 2: 20, 3: 18, 4: 16, 5: 14, 6: 13}

// thematicBreak is written for horizontal rules.
const thematicBreak = "────────────────────"

//nolint:gochecknoglobals // Stateless replacers.
var (
	textEscaper = strings.NewReplacer(`\`, `\\`, `[`, `\[`, `]`, `\]`)
	attrEscaper = strings.NewReplacer(`\`, `\\`, `[`, `\[`, `]`, `\]`, `|`, `%7C`)
)

// Markdown converts GitHub-flavored Markdown to bbcode.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown creates a converter with the GFM extensions enabled.
func NewMarkdown() *Markdown {
	return &Markdown{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Convert renders content as bbcode. Constructs with no bbcode equivalent,
// such as raw HTML, are dropped.
func (m *Markdown) Convert(ctx context.Context, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("convert cancelled: %w", err)
	}

	reader := text.NewReader(content)
	doc := m.md.Parser().Parse(reader, parser.WithContext(parser.NewContext()))

	w := &writer{source: content}
	if err := ast.Walk(doc, w.visit); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return strings.TrimRight(w.b.String(), "\n"), nil
}

// MarkdownToBBCode converts content with a default converter.
func MarkdownToBBCode(ctx context.Context, content []byte) (string, error) {
	return NewMarkdown().Convert(ctx, content)
}

type writer struct {
	source []byte
	b      strings.Builder
}

func (w *writer) visit(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := n.(type) {
	case *ast.Document:
	case *ast.Paragraph, *ast.TextBlock:
		if !entering {
			w.endBlock(n)
		}
	case *ast.Heading:
		size := headingSizes[node.Level]
		if entering {
			w.b.WriteString("[b][size=" + strconv.Itoa(size) + "]")
		} else {
			w.b.WriteString("[/size][/b]")
			w.endBlock(n)
		}
	case *ast.Emphasis:
		tag := "i"
		if node.Level >= 2 {
			tag = "b"
		}
		w.wrap(tag, entering)
	case *east.Strikethrough:
		w.wrap("s", entering)
	case *ast.Link:
		if entering {
			w.b.WriteString("[url=" + attrEscaper.Replace(string(node.Destination)) + "]")
		} else {
			w.b.WriteString("[/url]")
		}
	case *ast.AutoLink:
		if entering {
			w.b.WriteString("[url=" + attrEscaper.Replace(string(node.URL(w.source))) + "]")
			w.b.WriteString(textEscaper.Replace(string(node.Label(w.source))))
			w.b.WriteString("[/url]")
		}
		return ast.WalkSkipChildren, nil
	case *ast.CodeSpan:
		if entering {
			for child := node.FirstChild(); child != nil; child = child.NextSibling() {
				if t, ok := child.(*ast.Text); ok {
					w.b.WriteString(textEscaper.Replace(string(t.Value(w.source))))
				}
			}
		}
		return ast.WalkSkipChildren, nil
	case *ast.Text:
		if entering {
			w.text(node)
		}
	case *ast.String:
		if entering {
			w.b.WriteString(textEscaper.Replace(string(node.Value)))
		}
	case *ast.List:
		tag := "list"
		if node.IsOrdered() {
			tag = "ol"
		}
		w.wrap(tag, entering)
		if !entering {
			w.endBlock(n)
		}
	case *ast.ListItem:
		w.wrap("li", entering)
	case *ast.Blockquote:
		w.wrap("quote", entering)
		if !entering {
			w.endBlock(n)
		}
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if entering {
			w.lines(n)
		} else {
			w.endBlock(n)
		}
		return ast.WalkSkipChildren, nil
	case *ast.ThematicBreak:
		if entering {
			w.b.WriteString(thematicBreak)
		} else {
			w.endBlock(n)
		}
	case *ast.HTMLBlock, *ast.RawHTML:
		return ast.WalkSkipChildren, nil
	case *east.TaskCheckBox:
		if entering {
			if node.IsChecked {
				w.b.WriteString(`\[x\] `)
			} else {
				w.b.WriteString(`\[ \] `)
			}
		}
	case *east.Table:
		if !entering {
			w.endBlock(n)
		}
	case *east.TableHeader:
		w.wrap("b", entering)
		if !entering && n.NextSibling() != nil {
			w.b.WriteByte('\n')
		}
	case *east.TableRow:
		if !entering && n.NextSibling() != nil {
			w.b.WriteByte('\n')
		}
	case *east.TableCell:
		if !entering && n.NextSibling() != nil {
			w.b.WriteString(" | ")
		}
	}
	return ast.WalkContinue, nil
}

func (w *writer) wrap(tag string, entering bool) {
	if entering {
		w.b.WriteString("[" + tag + "]")
	} else {
		w.b.WriteString("[/" + tag + "]")
	}
}

func (w *writer) text(node *ast.Text) {
	value := node.Value(w.source)
	if !node.IsRaw() {
		value = util.UnescapePunctuations(value)
		value = util.ResolveNumericReferences(value)
		value = util.ResolveEntityNames(value)
	}
	w.b.WriteString(textEscaper.Replace(string(value)))
	switch {
	case node.HardLineBreak():
		w.b.WriteString("[br]")
	case node.SoftLineBreak():
		w.b.WriteByte(' ')
	}
}

func (w *writer) lines(n ast.Node) {
	lines := n.Lines()
	for i := range lines.Len() {
		segment := lines.At(i)
		line := strings.TrimRight(string(segment.Value(w.source)), "\r\n")
		if i > 0 {
			w.b.WriteByte('\n')
		}
		w.b.WriteString(textEscaper.Replace(line))
	}
}

// endBlock separates a block from its next sibling. Top-level blocks are
// separated by a blank line.
func (w *writer) endBlock(n ast.Node) {
	if n.NextSibling() == nil {
		return
	}
	w.b.WriteByte('\n')
	if parent := n.Parent(); parent != nil && parent.Kind() == ast.KindDocument {
		w.b.WriteByte('\n')
	}
}
