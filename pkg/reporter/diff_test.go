package reporter_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobbcode/internal/ui/pretty"
	"github.com/yaklabco/gobbcode/pkg/reporter"
)

func TestDiffTrees_Equal(t *testing.T) {
	t.Parallel()

	d := reporter.DiffTrees(mustParse(t, "[b]x[/b]"), mustParse(t, "[B]x[/b]"), 0)
	assert.True(t, d.Equal())
	assert.Len(t, d.Lines, 2)
}

func TestDiffTrees_Changed(t *testing.T) {
	t.Parallel()

	d := reporter.DiffTrees(mustParse(t, "[b]x[/b] y"), mustParse(t, "[i]x[/i] y"), 0)
	require.False(t, d.Equal())
	assert.Equal(t, 1, d.Insertions)
	assert.Equal(t, 1, d.Deletions)

	assert.Equal(t, []reporter.DiffLine{
		{Op: reporter.DiffEqual, Text: "Span"},
		{Op: reporter.DiffDelete, Text: `  Run "x" bold=true`},
		{Op: reporter.DiffInsert, Text: `  Run "x" italic=true`},
		{Op: reporter.DiffEqual, Text: `  Run " y"`},
	}, d.Lines)
}

func TestWriteDiff(t *testing.T) {
	t.Parallel()

	d := reporter.DiffText("a\nb\n", "a\nc\n")

	var buf bytes.Buffer
	require.NoError(t, reporter.WriteDiff(&buf, pretty.NewStyles(false), d, "left.bb", "right.bb"))

	assert.Equal(t,
		"--- left.bb\n+++ right.bb\n a\n-b\n+c\n1 insertions(+), 1 deletions(-)\n",
		buf.String())
}
