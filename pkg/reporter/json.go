package reporter

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gobbcode/internal/ui/pretty"
	"github.com/yaklabco/gobbcode/pkg/bbast"
	"github.com/yaklabco/gobbcode/pkg/runner"
)

// jsonSchemaVersion is bumped when the JSON layout changes incompatibly.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	RunID   string           `json:"runId,omitempty"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path  string     `json:"path"`
	Hash  string     `json:"sha256,omitempty"`
	Tree  *JSONNode  `json:"tree,omitempty"`
	Error *JSONError `json:"error,omitempty"`
}

// JSONError describes a parse failure. Line and Column are omitted when
// the failure has no position.
type JSONError struct {
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// JSONNode is one node of the output tree.
type JSONNode struct {
	Kind     string      `json:"kind"`
	Text     *string     `json:"text,omitempty"`
	Style    *JSONStyle  `json:"style,omitempty"`
	Link     *JSONLink   `json:"link,omitempty"`
	Children []*JSONNode `json:"children,omitempty"`
}

// JSONStyle carries only the attributes that were set.
type JSONStyle struct {
	Bold       bool     `json:"bold,omitempty"`
	Italic     bool     `json:"italic,omitempty"`
	Decoration string   `json:"decoration,omitempty"`
	FontSize   *float64 `json:"fontSize,omitempty"`
	Foreground string   `json:"foreground,omitempty"`
	Background string   `json:"background,omitempty"`
}

// JSONLink carries hyperlink or command-link attributes.
type JSONLink struct {
	URI        string       `json:"uri,omitempty"`
	Parameter  *string      `json:"parameter,omitempty"`
	Command    *JSONCommand `json:"command,omitempty"`
	TargetName *string      `json:"targetName,omitempty"`
	Target     *JSONElement `json:"target,omitempty"`
	Foreground string       `json:"foreground,omitempty"`
}

// JSONCommand identifies the command a link invokes.
type JSONCommand struct {
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// JSONElement identifies a resolved command target.
type JSONElement struct {
	Name string `json:"name"`
	Kind string `json:"kind,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int            `json:"filesDiscovered"`
	FilesParsed     int            `json:"filesParsed"`
	FilesFailed     int            `json:"filesFailed"`
	NodesTotal      int            `json:"nodesTotal"`
	NodesByKind     map[string]int `json:"nodesByKind"`
	LinksTotal      int            `json:"linksTotal"`
	CommandLinks    int            `json:"commandLinks"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. Parse errors are part of the document rather
// than written to the error stream.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesFailed, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			NodesByKind: make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	output.RunID = result.RunID
	output.Files = make([]JSONFileResult, 0, len(result.Files))

	for _, file := range result.Files {
		fileResult := JSONFileResult{Path: r.opts.displayPath(file.Path)}
		if file.Info != nil {
			fileResult.Hash = file.Info.HashString()
		}

		if file.Error != nil {
			detail := pretty.DescribeError(file.Error)
			fileResult.Error = &JSONError{
				Message: detail.Message,
				Line:    detail.Line,
				Column:  detail.Column,
			}
		} else {
			fileResult.Tree = NewJSONNode(file.Tree)
		}

		output.Files = append(output.Files, fileResult)
	}

	stats := result.Stats
	output.Summary.FilesDiscovered = stats.FilesDiscovered
	output.Summary.FilesParsed = stats.FilesParsed
	output.Summary.FilesFailed = stats.FilesFailed
	output.Summary.NodesTotal = stats.NodesTotal
	output.Summary.LinksTotal = stats.LinksTotal
	output.Summary.CommandLinks = stats.CommandLinks
	for kind, n := range stats.NodesByKind {
		output.Summary.NodesByKind[kind.String()] = n
	}

	return output
}

// NewJSONNode converts a tree to its JSON form.
func NewJSONNode(n *bbast.Node) *JSONNode {
	if n == nil {
		return nil
	}

	out := &JSONNode{Kind: n.Kind.String()}

	switch n.Kind {
	case bbast.NodeRun:
		text := n.Text
		out.Text = &text
		out.Style = newJSONStyle(n.Style)
	case bbast.NodeLink:
		out.Link = newJSONLink(n.Link)
	}

	for _, child := range n.Children {
		out.Children = append(out.Children, NewJSONNode(child))
	}
	return out
}

func newJSONStyle(s *bbast.Style) *JSONStyle {
	if s.IsZero() {
		return nil
	}
	out := &JSONStyle{
		Bold:     s.Bold,
		Italic:   s.Italic,
		FontSize: s.FontSize,
	}
	if s.Decoration != bbast.DecorationNone {
		out.Decoration = s.Decoration.String()
	}
	if s.Foreground != nil {
		out.Foreground = s.Foreground.Hex()
	}
	if s.Background != nil {
		out.Background = s.Background.Hex()
	}
	return out
}

func newJSONLink(l *bbast.LinkAttrs) *JSONLink {
	if l == nil {
		return nil
	}
	out := &JSONLink{
		URI:        l.URI,
		Parameter:  l.Parameter,
		TargetName: l.TargetName,
	}
	if l.Command != nil {
		out.Command = &JSONCommand{Name: l.Command.Name, URI: l.Command.URI}
	}
	if l.Target != nil {
		out.Target = &JSONElement{Name: l.Target.Name, Kind: l.Target.Kind}
	}
	if l.Foreground != nil {
		out.Foreground = l.Foreground.Hex()
	}
	return out
}

type jsonEncoder struct {
	compact bool
}

func (e jsonEncoder) Encode(tree *bbast.Node) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if !e.compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(NewJSONNode(tree)); err != nil {
		return nil, fmt.Errorf("encode JSON: %w", err)
	}
	return buf.Bytes(), nil
}
