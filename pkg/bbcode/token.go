// Package bbcode lexes and parses bracket-tag markup ([b], [color=red],
// [url=...]) into a styled inline tree.
package bbcode

import "fmt"

// TokenKind identifies the type of a lexical token.
type TokenKind uint16

const (
	// TokStartTag is an opening tag; Value holds the tag name.
	TokStartTag TokenKind = iota
	// TokEndTag is a closing tag; Value holds the tag name.
	TokEndTag
	// TokAttribute is the "=value" part of an opening tag. It always
	// directly follows the TokStartTag it belongs to.
	TokAttribute
	// TokText is a run of literal text with escapes resolved.
	TokText
	// TokLineBreak is a newline in the input.
	TokLineBreak
	// TokEnd marks the end of input. Once reached, it is returned forever.
	TokEnd
)

// String returns a human-readable name for the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokStartTag:
		return "StartTag"
	case TokEndTag:
		return "EndTag"
	case TokAttribute:
		return "Attribute"
	case TokText:
		return "Text"
	case TokLineBreak:
		return "LineBreak"
	case TokEnd:
		return "End"
	default:
		return fmt.Sprintf("TokenKind(%d)", uint16(k))
	}
}

// Token is a single lexical unit.
type Token struct {
	Kind  TokenKind
	Value string
	// Offset is the byte offset of the token's first character.
	Offset int
}

// String formats the token for diagnostics, e.g. StartTag("b").
func (t Token) String() string {
	switch t.Kind {
	case TokLineBreak, TokEnd:
		return t.Kind.String()
	default:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Value)
	}
}
