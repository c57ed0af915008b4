package bbcode

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks against the typed errors below.
var (
	ErrLex              = errors.New("lex error")
	ErrUnexpectedToken  = errors.New("unexpected token")
	ErrUnknownTokenType = errors.New("unknown token type")
	ErrConversion       = errors.New("conversion error")
	ErrParserReused     = errors.New("parser has already been used")
)

// LexError reports malformed markup.
type LexError struct {
	Offset  int
	Line    int
	Column  int
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// Is makes errors.Is(err, ErrLex) true.
func (e *LexError) Is(target error) bool {
	return target == ErrLex
}

// UnexpectedTokenError reports a token the parser cannot place, such as an
// attribute following a tag that does not take one.
type UnexpectedTokenError struct {
	Token  Token
	Line   int
	Column int
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("%d:%d: unexpected token %s", e.Line, e.Column, e.Token)
}

// Is makes errors.Is(err, ErrUnexpectedToken) true.
func (e *UnexpectedTokenError) Is(target error) bool {
	return target == ErrUnexpectedToken
}

// UnknownTokenTypeError reports a token kind the parser does not handle.
type UnknownTokenTypeError struct {
	Kind TokenKind
}

func (e *UnknownTokenTypeError) Error() string {
	return fmt.Sprintf("unknown token type %s", e.Kind)
}

// Is makes errors.Is(err, ErrUnknownTokenType) true.
func (e *UnknownTokenTypeError) Is(target error) bool {
	return target == ErrUnknownTokenType
}

// ConversionError reports a tag attribute that could not be converted,
// such as a malformed color or font size.
type ConversionError struct {
	Tag   Tag
	Value string
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("invalid %s value %q: %v", e.Tag, e.Value, e.Err)
}

// Unwrap returns the underlying conversion failure.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrConversion) true.
func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}

// lineColumn converts a byte offset into a 1-based line and column. Lines
// end at the same breaks the lexer emits: "\r\n", "\r" or "\n".
func lineColumn(input string, offset int) (int, int) {
	if offset > len(input) {
		offset = len(input)
	}
	line, lineStart := 1, 0
	for i := 0; i < offset; i++ {
		switch input[i] {
		case '\r':
			if i+1 < len(input) && input[i+1] == '\n' {
				continue
			}
		case '\n':
		default:
			continue
		}
		line++
		lineStart = i + 1
	}
	return line, offset - lineStart + 1
}
