package bbcode

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// lexState tracks whether the lexer is between tags or inside an opening tag.
type lexState uint8

const (
	stateText lexState = iota
	stateTag
)

// Lexer turns markup into tokens on demand.
//
// A Lexer is not safe for concurrent use. It holds no state beyond its
// position, so separate Lexers on separate goroutines are independent.
type Lexer struct {
	input    string
	pos      int
	state    lexState
	tagStart int
	hasAttr  bool
	err      error
}

// NewLexer creates a lexer over input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Next returns the next token. At end of input it returns a TokEnd token,
// and keeps doing so on every later call. After a LexError, every later call
// returns the same error.
func (l *Lexer) Next() (Token, error) {
	if l.err != nil {
		return Token{}, l.err
	}
	tok, err := l.next()
	if err != nil {
		l.err = err
		return Token{}, err
	}
	return tok, nil
}

// Tokenize lexes the whole input, including the final TokEnd.
func Tokenize(input string) ([]Token, error) {
	lexer := NewLexer(input)
	var tokens []Token
	for {
		tok, err := lexer.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokEnd {
			return tokens, nil
		}
	}
}

func (l *Lexer) next() (Token, error) {
	if l.state == stateTag {
		tok, done, err := l.insideTag()
		if err != nil || !done {
			return tok, err
		}
	}

	if l.pos >= len(l.input) {
		return Token{Kind: TokEnd, Offset: len(l.input)}, nil
	}

	switch l.input[l.pos] {
	case '[':
		if l.peekByte(1) == '/' {
			return l.endTag()
		}
		return l.startTag()
	case '\n', '\r':
		return l.lineBreak(), nil
	default:
		return l.text()
	}
}

// insideTag handles the remainder of an opening tag after its name. It
// returns done=true once the closing bracket has been consumed.
func (l *Lexer) insideTag() (Token, bool, error) {
	l.skipBlanks()
	if l.pos >= len(l.input) {
		return Token{}, false, l.errorf(l.tagStart, "unterminated tag")
	}

	switch l.input[l.pos] {
	case ']':
		l.pos++
		l.state = stateText
		return Token{}, true, nil
	case '=':
		if l.hasAttr {
			return Token{}, false, l.errorf(l.pos, "tag has more than one attribute")
		}
		l.hasAttr = true
		tok, err := l.attribute()
		return tok, false, err
	default:
		return Token{}, false, l.errorf(l.pos, "unexpected %s in tag", l.describeAt(l.pos))
	}
}

func (l *Lexer) startTag() (Token, error) {
	start := l.pos
	l.pos++ // [

	nameStart := l.pos
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == ']' || c == '=' || c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			break
		}
		if c == '[' {
			return Token{}, l.errorf(l.pos, "unexpected '[' in tag")
		}
		l.pos++
	}
	if l.pos >= len(l.input) {
		return Token{}, l.errorf(start, "unterminated tag")
	}

	l.state = stateTag
	l.tagStart = start
	l.hasAttr = false
	return Token{Kind: TokStartTag, Value: l.input[nameStart:l.pos], Offset: start}, nil
}

func (l *Lexer) endTag() (Token, error) {
	start := l.pos
	l.pos += 2 // [/

	nameStart := l.pos
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ']':
			name := strings.TrimSpace(l.input[nameStart:l.pos])
			l.pos++
			return Token{Kind: TokEndTag, Value: name, Offset: start}, nil
		case '[', '\n', '\r':
			return Token{}, l.errorf(l.pos, "unterminated end tag")
		}
		l.pos++
	}
	return Token{}, l.errorf(start, "unterminated end tag")
}

func (l *Lexer) attribute() (Token, error) {
	start := l.pos
	l.pos++ // =
	l.skipBlanks()
	if l.pos >= len(l.input) {
		return Token{}, l.errorf(l.tagStart, "unterminated tag")
	}

	if quote := l.input[l.pos]; quote == '"' || quote == '\'' {
		valueStart := l.pos + 1
		end := strings.IndexByte(l.input[valueStart:], quote)
		if end < 0 {
			return Token{}, l.errorf(l.pos, "unterminated quoted attribute")
		}
		l.pos = valueStart + end + 1
		return Token{Kind: TokAttribute, Value: l.input[valueStart : valueStart+end], Offset: start}, nil
	}

	var b strings.Builder
	for {
		if l.pos >= len(l.input) {
			return Token{}, l.errorf(l.tagStart, "unterminated tag")
		}
		switch c := l.input[l.pos]; c {
		case ']':
			value := strings.TrimRight(b.String(), " \t")
			return Token{Kind: TokAttribute, Value: value, Offset: start}, nil
		case '\\':
			if err := l.escape(&b); err != nil {
				return Token{}, err
			}
		case '\n', '\r':
			return Token{}, l.errorf(l.tagStart, "unterminated tag")
		default:
			b.WriteByte(c)
			l.pos++
		}
	}
}

func (l *Lexer) text() (Token, error) {
	start := l.pos
	var b strings.Builder
	for l.pos < len(l.input) {
		switch c := l.input[l.pos]; c {
		case '[', '\n', '\r':
			return Token{Kind: TokText, Value: b.String(), Offset: start}, nil
		case ']':
			return Token{}, l.errorf(l.pos, "unescaped ']' in text")
		case '\\':
			if err := l.escape(&b); err != nil {
				return Token{}, err
			}
		default:
			b.WriteByte(c)
			l.pos++
		}
	}
	return Token{Kind: TokText, Value: b.String(), Offset: start}, nil
}

func (l *Lexer) lineBreak() Token {
	start := l.pos
	if l.input[l.pos] == '\r' && l.peekByte(1) == '\n' {
		l.pos += 2
	} else {
		l.pos++
	}
	return Token{Kind: TokLineBreak, Offset: start}
}

// escape consumes a backslash sequence at the current position and writes
// the literal character it stands for.
func (l *Lexer) escape(b *strings.Builder) error {
	if l.pos+1 >= len(l.input) {
		return l.errorf(l.pos, "trailing backslash")
	}
	switch c := l.input[l.pos+1]; c {
	case '[', ']', '\\':
		b.WriteByte(c)
		l.pos += 2
		return nil
	default:
		return l.errorf(l.pos, "invalid escape sequence \\%s", l.runeAt(l.pos+1))
	}
}

func (l *Lexer) skipBlanks() {
	for l.pos < len(l.input) && (l.input[l.pos] == ' ' || l.input[l.pos] == '\t') {
		l.pos++
	}
}

func (l *Lexer) peekByte(offset int) byte {
	if l.pos+offset < len(l.input) {
		return l.input[l.pos+offset]
	}
	return 0
}

func (l *Lexer) runeAt(offset int) string {
	r, _ := utf8.DecodeRuneInString(l.input[offset:])
	return string(r)
}

func (l *Lexer) describeAt(offset int) string {
	switch l.input[offset] {
	case '\n', '\r':
		return "line break"
	default:
		return fmt.Sprintf("%q", l.runeAt(offset))
	}
}

func (l *Lexer) errorf(offset int, format string, args ...any) error {
	line, col := lineColumn(l.input, offset)
	return &LexError{
		Offset:  offset,
		Line:    line,
		Column:  col,
		Message: fmt.Sprintf(format, args...),
	}
}
