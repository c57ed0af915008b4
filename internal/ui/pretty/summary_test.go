package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gobbcode/internal/ui/pretty"
	"github.com/yaklabco/gobbcode/pkg/bbast"
	"github.com/yaklabco/gobbcode/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "single file",
			stats: runner.Stats{FilesParsed: 1, NodesTotal: 3},
			want:  "1 file parsed, 3 nodes\n",
		},
		{
			name:  "with failures and links",
			stats: runner.Stats{FilesParsed: 2, FilesFailed: 1, NodesTotal: 9, LinksTotal: 2, CommandLinks: 1},
			want:  "2 files parsed, 1 failed, 9 nodes, 2 links (1 commands)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	ok := styles.FormatSummary(runner.Stats{
		FilesDiscovered: 2,
		FilesParsed:     2,
		NodesTotal:      7,
		NodesByKind:     map[bbast.NodeKind]int{bbast.NodeSpan: 2, bbast.NodeRun: 4, bbast.NodeLineBreak: 1},
	})
	assert.Contains(t, ok, "Files parsed:      2")
	assert.Contains(t, ok, "    Run:             4")
	assert.Contains(t, ok, "    LineBreak:       1")
	assert.NotContains(t, ok, "Files failed")
	assert.Contains(t, ok, "Parse succeeded")

	failed := styles.FormatSummary(runner.Stats{FilesDiscovered: 1, FilesFailed: 1})
	assert.Contains(t, failed, "Files failed:      1")
	assert.Contains(t, failed, "Parse failed")
}
