// Package bbast defines the styled inline tree produced by the bbcode parser.
//
// The tree mirrors a flow-document inline model: a root Span holds Runs of
// text, LineBreaks, and Links that wrap a single Run. Nodes are plain data
// and are safe to share across goroutines once the parser has returned them.
package bbast

// NodeKind identifies the type of an inline node.
type NodeKind uint16

const (
	// NodeSpan is a container of inlines. The parser's result is always a Span.
	NodeSpan NodeKind = iota
	// NodeRun is a piece of text with a style snapshot.
	NodeRun
	// NodeLineBreak is a forced line break.
	NodeLineBreak
	// NodeLink is a hyperlink wrapping a Run.
	NodeLink
)

// String returns a human-readable name for the node kind.
func (k NodeKind) String() string {
	switch k {
	case NodeSpan:
		return "Span"
	case NodeRun:
		return "Run"
	case NodeLineBreak:
		return "LineBreak"
	case NodeLink:
		return "Link"
	default:
		return "Unknown"
	}
}

// Node is one element of the inline tree.
type Node struct {
	Kind NodeKind

	// Text holds the content of a Run.
	Text string

	// Style is the attribute snapshot of a Run. Nil when no
	// attribute was set at the point the node was produced.
	Style *Style

	// Link holds the hyperlink attributes of a Link node.
	Link *LinkAttrs

	// Children holds the inlines of a Span or Link.
	Children []*Node
}

// LinkAttrs holds the properties of a hyperlink.
//
// A link either resolved to a registered command, in which case Command is
// set and TargetName/Target may be, or it is a plain navigation link with
// only URI and Parameter.
type LinkAttrs struct {
	URI        string
	Parameter  *string
	TargetName *string
	Target     *ElementRef
	Command    *CommandRef
	// Foreground is the color open when the link was created. Renderers
	// apply it to the link itself so it overrides their default link color.
	Foreground *Color
}

// IsCommand reports whether the link resolved to a registered command.
func (l *LinkAttrs) IsCommand() bool {
	return l != nil && l.Command != nil
}

// CommandRef identifies a command registered with a command resolver.
type CommandRef struct {
	// Name is the command's display name.
	Name string
	// URI is the normalized URI the command was registered under.
	URI string
}

// ElementRef identifies a named element located by an element finder.
type ElementRef struct {
	Name string
	Kind string
}

// NewSpan creates an empty Span.
func NewSpan() *Node {
	return &Node{Kind: NodeSpan}
}

// NewRun creates a Run with the given text and style snapshot.
func NewRun(text string, style *Style) *Node {
	return &Node{Kind: NodeRun, Text: text, Style: style}
}

// NewLineBreak creates a LineBreak.
func NewLineBreak() *Node {
	return &Node{Kind: NodeLineBreak}
}

// NewLink creates a Link with the given attributes and no children.
func NewLink(attrs *LinkAttrs) *Node {
	return &Node{Kind: NodeLink, Link: attrs}
}

// AppendChild adds child to the end of parent's inlines.
func (n *Node) AppendChild(child *Node) {
	n.Children = append(n.Children, child)
}

// HasChildren reports whether the node has any inlines.
func (n *Node) HasChildren() bool {
	return len(n.Children) > 0
}

// IsContainer reports whether the node kind can hold children.
func (n *Node) IsContainer() bool {
	return n.Kind == NodeSpan || n.Kind == NodeLink
}
