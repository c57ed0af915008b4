package runner_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobbcode/pkg/bbast"
	"github.com/yaklabco/gobbcode/pkg/bbcode"
	"github.com/yaklabco/gobbcode/pkg/config"
	"github.com/yaklabco/gobbcode/pkg/runner"
)

func newRunner(t *testing.T, mutate func(*config.Config)) *runner.Runner {
	t.Helper()
	cfg := config.NewConfig()
	if mutate != nil {
		mutate(cfg)
	}
	proc, err := runner.NewProcessor(cfg, nil)
	require.NoError(t, err)
	return runner.New(proc)
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.bb":     "[b]bold[/b] [url=app://open|x]go[/url]",
		"b.bb":     "[url=https://example.com]site[/url][br]",
		"c.bb":     "broken ] text",
		"d.bbcode": "plain",
	})

	r := newRunner(t, func(cfg *config.Config) {
		cfg.Commands["app://open"] = config.CommandConfig{Name: "Open"}
	})

	result, err := r.Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 3})
	require.NoError(t, err)

	_, err = uuid.Parse(result.RunID)
	require.NoError(t, err)

	require.Len(t, result.Files, 4)
	assert.Equal(t, filepath.Join(dir, "a.bb"), result.Files[0].Path)
	assert.Equal(t, filepath.Join(dir, "d.bbcode"), result.Files[3].Path)

	assert.Equal(t, 4, result.Stats.FilesDiscovered)
	assert.Equal(t, 3, result.Stats.FilesParsed)
	assert.Equal(t, 1, result.Stats.FilesFailed)
	assert.Equal(t, 2, result.Stats.LinksTotal)
	assert.Equal(t, 1, result.Stats.CommandLinks)
	assert.Equal(t, 3, result.Stats.NodesByKind[bbast.NodeSpan])
	assert.Equal(t, 1, result.Stats.NodesByKind[bbast.NodeLineBreak])
	assert.True(t, result.HasFailures())

	failed := result.Files[2]
	assert.Nil(t, failed.Tree)
	require.ErrorIs(t, failed.Error, bbcode.ErrLex)
	assert.NotNil(t, failed.Info, "file metadata is kept when parsing fails")
	assert.Equal(t, "broken ] text", failed.Markup)
	assert.Len(t, result.Errors(), 1)

	first := result.Files[0]
	require.NotNil(t, first.Tree)
	assert.Equal(t, "bold go", bbast.VisibleText(first.Tree))
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	r := newRunner(t, nil)
	result, err := r.Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.False(t, result.HasFailures())
}

func TestRunner_Run_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.bb": "x"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner(t, nil).Run(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunner_RunSource(t *testing.T) {
	t.Parallel()

	r := newRunner(t, nil)

	result := r.RunSource(context.Background(), runner.StdinPath, []byte("[quote]q[/quote]"))
	require.Len(t, result.Files, 1)
	require.NoError(t, result.Files[0].Error)

	runs := bbast.FindByKind(result.Files[0].Tree, bbast.NodeRun)
	require.Len(t, runs, 1)
	require.NotNil(t, runs[0].Style.Background)
	assert.Equal(t, "#dddddd", runs[0].Style.Background.Hex())

	result = r.RunSource(context.Background(), runner.StdinPath, []byte("[b=1]x"))
	assert.True(t, result.HasFailures())
	require.ErrorIs(t, result.Files[0].Error, bbcode.ErrUnexpectedToken)
	assert.Contains(t, result.Files[0].Error.Error(), runner.StdinPath)
}

func TestProcessor_Markdown(t *testing.T) {
	t.Parallel()

	proc, err := runner.NewProcessor(&config.Config{From: config.InputMarkdown}, nil)
	require.NoError(t, err)
	assert.Nil(t, proc.QuoteBackground)

	tree, err := proc.Process(context.Background(), []byte("**bold** and *it*"))
	require.NoError(t, err)

	runs := bbast.FindByKind(tree, bbast.NodeRun)
	require.Len(t, runs, 3)
	assert.True(t, runs[0].Style.Bold)
	assert.Nil(t, runs[1].Style)
	assert.True(t, runs[2].Style.Italic)
}

func TestProcessor_AutoDetect(t *testing.T) {
	t.Parallel()

	proc, err := runner.NewProcessor(&config.Config{From: config.InputAuto}, nil)
	require.NoError(t, err)

	tests := []struct {
		name string
		path string
		want config.InputFormat
	}{
		{"markdown file", "notes.md", config.InputMarkdown},
		{"bbcode file", "notes.bb", config.InputBBCode},
		{"stdin", runner.StdinPath, config.InputMarkdown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, proc.InputFormat(tt.path, []byte("# Title\n\n**bold**\n")))
		})
	}
}

func TestRunner_Run_MixedInputs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.bb":    "[b]bold[/b]",
		"b.md":    "**bold**",
		"c.mdown": "*it*",
	})

	r := newRunner(t, func(cfg *config.Config) {
		cfg.From = config.InputAuto
	})

	result, err := r.Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Extensions: []string{".bb", ".md", ".mdown"},
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 3)
	require.False(t, result.HasFailures())

	for _, file := range result.Files[:2] {
		runs := bbast.FindByKind(file.Tree, bbast.NodeRun)
		require.Len(t, runs, 1, file.Path)
		assert.Equal(t, "bold", runs[0].Text, file.Path)
		assert.True(t, runs[0].Style.Bold, file.Path)
	}

	runs := bbast.FindByKind(result.Files[2].Tree, bbast.NodeRun)
	require.Len(t, runs, 1)
	assert.True(t, runs[0].Style.Italic)
}

func TestQuoteBackground(t *testing.T) {
	t.Parallel()

	c, err := runner.QuoteBackground("none")
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = runner.QuoteBackground("")
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = runner.QuoteBackground("#102030")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, bbast.Opaque(0x10, 0x20, 0x30), *c)

	_, err = runner.QuoteBackground("#12")
	require.Error(t, err)
}

func TestNewProcessor_BadCommand(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Commands[""] = config.CommandConfig{Name: "empty"}

	_, err := runner.NewProcessor(cfg, nil)
	require.Error(t, err)
}
