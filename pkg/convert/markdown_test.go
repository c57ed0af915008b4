package convert_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobbcode/pkg/bbast"
	"github.com/yaklabco/gobbcode/pkg/bbcode"
	"github.com/yaklabco/gobbcode/pkg/convert"
)

func TestMarkdownConvert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"emphasis", "*a* **b**", "[i]a[/i] [b]b[/b]"},
		{"heading then paragraph", "# Title\n\nBody", "[b][size=24]Title[/size][/b]\n\nBody"},
		{"second level heading", "## Sub", "[b][size=20]Sub[/size][/b]"},
		{"bulleted list", "- a\n- b", "[list][li]a[/li][li]b[/li][/list]"},
		{"ordered list", "1. x\n2. y", "[ol][li]x[/li][li]y[/li][/ol]"},
		{"link", "[site](https://e.com/a)", "[url=https://e.com/a]site[/url]"},
		{"pipe in link destination", "[site](https://e.com/a|b)", "[url=https://e.com/a%7Cb]site[/url]"},
		{"strikethrough", "~~gone~~", "[s]gone[/s]"},
		{"blockquote", "> quoted", "[quote]quoted[/quote]"},
		{"brackets are escaped", `a \[b\] c`, `a \[b\] c`},
		{"code span", "`a[0]`", `a\[0\]`},
		{"soft break becomes space", "a\nb", "a b"},
		{"fenced code", "```\nx[1]\ny\n```", "x\\[1\\]\ny"},
		{"raw html dropped", "a <span>b</span>", "a b"},
	}

	conv := convert.NewMarkdown()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.Convert(context.Background(), []byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMarkdownHardBreak(t *testing.T) {
	t.Parallel()

	got, err := convert.MarkdownToBBCode(context.Background(), []byte("one\\\ntwo"))
	require.NoError(t, err)
	assert.Equal(t, "one[br]two", got)
}

func TestMarkdownOutputParses(t *testing.T) {
	t.Parallel()

	input := `# Notes

Some *styled* and **strong** text with a [link](https://example.com) and ` + "`code[]`" + `.

- first
- second with ~~strike~~

> quote

1. one
2. two

| a | b |
|---|---|
| 1 | 2 |

- [x] done
`

	out, err := convert.MarkdownToBBCode(context.Background(), []byte(input))
	require.NoError(t, err)

	root, err := bbcode.Parse(out)
	require.NoError(t, err, out)

	text := bbast.VisibleText(root)
	assert.Contains(t, text, "Notes")
	assert.Contains(t, text, "code[]")
	assert.Contains(t, text, "  1.  one")
	assert.Contains(t, text, "[x] done")
	assert.Len(t, bbast.FindByKind(root, bbast.NodeLink), 1)
}

func TestMarkdownCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := convert.NewMarkdown().Convert(ctx, []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
}
