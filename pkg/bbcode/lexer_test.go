package bbcode_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobbcode/pkg/bbcode"
)

type tok struct {
	kind  bbcode.TokenKind
	value string
}

func kinds(tokens []bbcode.Token) []tok {
	out := make([]tok, len(tokens))
	for i, t := range tokens {
		out[i] = tok{t.Kind, t.Value}
	}
	return out
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []tok
	}{
		{
			name:  "empty input",
			input: "",
			want:  []tok{{bbcode.TokEnd, ""}},
		},
		{
			name:  "plain text",
			input: "hello world",
			want:  []tok{{bbcode.TokText, "hello world"}, {bbcode.TokEnd, ""}},
		},
		{
			name:  "start and end tag",
			input: "[b]x[/b]",
			want: []tok{
				{bbcode.TokStartTag, "b"},
				{bbcode.TokText, "x"},
				{bbcode.TokEndTag, "b"},
				{bbcode.TokEnd, ""},
			},
		},
		{
			name:  "attribute follows start tag",
			input: "[color=#FF0000]x",
			want: []tok{
				{bbcode.TokStartTag, "color"},
				{bbcode.TokAttribute, "#FF0000"},
				{bbcode.TokText, "x"},
				{bbcode.TokEnd, ""},
			},
		},
		{
			name:  "whitespace around attribute",
			input: "[size = 12 ]",
			want: []tok{
				{bbcode.TokStartTag, "size"},
				{bbcode.TokAttribute, "12"},
				{bbcode.TokEnd, ""},
			},
		},
		{
			name:  "double quoted attribute keeps brackets",
			input: `[url="a]b"]`,
			want: []tok{
				{bbcode.TokStartTag, "url"},
				{bbcode.TokAttribute, "a]b"},
				{bbcode.TokEnd, ""},
			},
		},
		{
			name:  "single quoted attribute",
			input: `[color='red']`,
			want: []tok{
				{bbcode.TokStartTag, "color"},
				{bbcode.TokAttribute, "red"},
				{bbcode.TokEnd, ""},
			},
		},
		{
			name:  "escaped bracket in attribute",
			input: `[url=a\]b]`,
			want: []tok{
				{bbcode.TokStartTag, "url"},
				{bbcode.TokAttribute, "a]b"},
				{bbcode.TokEnd, ""},
			},
		},
		{
			name:  "url with pipes",
			input: "[url=cmd://foo|p1|target1]",
			want: []tok{
				{bbcode.TokStartTag, "url"},
				{bbcode.TokAttribute, "cmd://foo|p1|target1"},
				{bbcode.TokEnd, ""},
			},
		},
		{
			name:  "escapes in text",
			input: `a\[b\]c\\d`,
			want:  []tok{{bbcode.TokText, `a[b]c\d`}, {bbcode.TokEnd, ""}},
		},
		{
			name:  "line break forms",
			input: "a\nb\r\nc\rd",
			want: []tok{
				{bbcode.TokText, "a"},
				{bbcode.TokLineBreak, ""},
				{bbcode.TokText, "b"},
				{bbcode.TokLineBreak, ""},
				{bbcode.TokText, "c"},
				{bbcode.TokLineBreak, ""},
				{bbcode.TokText, "d"},
				{bbcode.TokEnd, ""},
			},
		},
		{
			name:  "end tag name trimmed",
			input: "[/ b ]",
			want:  []tok{{bbcode.TokEndTag, "b"}, {bbcode.TokEnd, ""}},
		},
		{
			name:  "empty tag",
			input: "[]",
			want:  []tok{{bbcode.TokStartTag, ""}, {bbcode.TokEnd, ""}},
		},
		{
			name:  "utf8 text",
			input: "héllo • wörld",
			want:  []tok{{bbcode.TokText, "héllo • wörld"}, {bbcode.TokEnd, ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens, err := bbcode.Tokenize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, kinds(tokens))
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		message string
		line    int
		column  int
	}{
		{"unterminated start tag", "[b", "unterminated tag", 1, 1},
		{"unterminated after name", "x\n[color=red", "unterminated tag", 2, 1},
		{"unterminated end tag", "[/b", "unterminated end tag", 1, 1},
		{"newline in end tag", "[/b\n]", "unterminated end tag", 1, 4},
		{"nested bracket in tag", "[b[i]]", "unexpected '[' in tag", 1, 3},
		{"junk after tag name", "[b x]", `unexpected "x" in tag`, 1, 4},
		{"unescaped close bracket", "a]b", "unescaped ']' in text", 1, 2},
		{"invalid escape", `a\nb`, `invalid escape sequence \n`, 1, 2},
		{"trailing backslash", `ab\`, "trailing backslash", 1, 3},
		{"unterminated quote", `[url="abc]`, "unterminated quoted attribute", 1, 6},
		{"newline in attribute", "[url=abc\n]", "unterminated tag", 1, 1},
		{"position after crlf", "a\r\nbc]", "unescaped ']' in text", 2, 3},
		{"position after lone cr", "a\rb\r\r]", "unescaped ']' in text", 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := bbcode.Tokenize(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, bbcode.ErrLex)

			var lexErr *bbcode.LexError
			require.True(t, errors.As(err, &lexErr))
			assert.Equal(t, tt.message, lexErr.Message)
			assert.Equal(t, tt.line, lexErr.Line)
			assert.Equal(t, tt.column, lexErr.Column)
		})
	}
}

func TestLexerEndIsSticky(t *testing.T) {
	t.Parallel()

	lexer := bbcode.NewLexer("x")
	first, err := lexer.Next()
	require.NoError(t, err)
	assert.Equal(t, bbcode.TokText, first.Kind)

	for range 3 {
		next, err := lexer.Next()
		require.NoError(t, err)
		assert.Equal(t, bbcode.TokEnd, next.Kind)
	}
}

func TestLexerErrorIsSticky(t *testing.T) {
	t.Parallel()

	lexer := bbcode.NewLexer("[b")
	_, first := lexer.Next()
	require.Error(t, first)

	_, second := lexer.Next()
	assert.Same(t, first, second)
}

func TestTokenOffsets(t *testing.T) {
	t.Parallel()

	tokens, err := bbcode.Tokenize("ab[i=x]c")
	require.NoError(t, err)
	require.Len(t, tokens, 5)

	assert.Equal(t, 0, tokens[0].Offset)
	assert.Equal(t, 2, tokens[1].Offset)
	assert.Equal(t, 4, tokens[2].Offset)
	assert.Equal(t, 7, tokens[3].Offset)
	assert.Equal(t, 8, tokens[4].Offset)
}

func TestTokenString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `StartTag("b")`, bbcode.Token{Kind: bbcode.TokStartTag, Value: "b"}.String())
	assert.Equal(t, "End", bbcode.Token{Kind: bbcode.TokEnd}.String())
	assert.Equal(t, "TokenKind(42)", bbcode.TokenKind(42).String())
}

func TestTokenizeRejectsSecondAttribute(t *testing.T) {
	t.Parallel()

	_, err := bbcode.Tokenize(`[color="red" ="blue"]`)
	var lexErr *bbcode.LexError
	require.True(t, errors.As(err, &lexErr))
	assert.Equal(t, "tag has more than one attribute", lexErr.Message)
}
