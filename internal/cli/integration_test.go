package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobbcode/internal/cli"
)

const testConfig = `quote_background: "#DDDDDD"
commands:
  "app://open":
    name: Open
elements:
  - name: viewer
    kind: Panel
`

// execute runs the root command with args, reading stdin from the given
// string, and returns stdout, stderr and the command error.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeTestFiles writes files relative to a new temp dir and returns it,
// along with a config file path inside it.
func writeTestFiles(t *testing.T, files map[string]string) (string, string) {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	cfgFile := filepath.Join(dir, "gobbcode.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(testConfig), 0o644))

	return dir, cfgFile
}

func TestIntegration_ParseFile(t *testing.T) {
	t.Parallel()

	dir, cfg := writeTestFiles(t, map[string]string{
		"intro.bbcode": "[b]hi[/b] there",
	})

	stdout, stderr, err := execute(t, "", "parse", "--config", cfg, "--color", "never",
		filepath.Join(dir, "intro.bbcode"))
	require.NoError(t, err)
	assert.Empty(t, stderr)

	assert.Equal(t, "Span\n  Run \"hi\" bold=true\n  Run \" there\"\n", stdout)
}

func TestIntegration_ParseCommandLink(t *testing.T) {
	t.Parallel()

	dir, cfg := writeTestFiles(t, map[string]string{
		"link.bbcode": "[url=app://open|42|viewer]go[/url]",
	})

	stdout, _, err := execute(t, "", "parse", "--config", cfg, "--color", "never",
		filepath.Join(dir, "link.bbcode"))
	require.NoError(t, err)

	assert.Contains(t, stdout,
		`Link uri="app://open" parameter="42" command="Open" target="viewer" resolved=true kind="Panel"`)
	assert.Contains(t, stdout, `    Run "go"`)
}

func TestIntegration_ParseStdin(t *testing.T) {
	t.Parallel()

	_, cfg := writeTestFiles(t, nil)

	stdout, _, err := execute(t, "one[br]two", "parse", "--config", cfg, "--color", "never",
		"--format", "text", "-")
	require.NoError(t, err)

	assert.Equal(t, "one\ntwo\n", stdout)
}

func TestIntegration_ParseDirectory(t *testing.T) {
	t.Parallel()

	dir, cfg := writeTestFiles(t, map[string]string{
		"a.bbcode":         "[i]a[/i]",
		"nested/b.bb":      "b",
		"nested/notes.txt": "ignored",
		".hidden/c.bbcode": "hidden",
	})

	stdout, _, err := execute(t, "", "parse", "--config", cfg, "--color", "never",
		"--format", "json", dir)
	require.NoError(t, err)

	var output struct {
		RunID string `json:"runId"`
		Files []struct {
			Path string `json:"path"`
		} `json:"files"`
		Summary struct {
			FilesParsed int `json:"filesParsed"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &output))

	assert.NotEmpty(t, output.RunID)
	assert.Equal(t, 2, output.Summary.FilesParsed)
	require.Len(t, output.Files, 2)
	assert.True(t, strings.HasSuffix(output.Files[0].Path, "a.bbcode"))
	assert.True(t, strings.HasSuffix(output.Files[1].Path, filepath.Join("nested", "b.bb")))
}

func TestIntegration_ParseErrorExitCode(t *testing.T) {
	t.Parallel()

	dir, cfg := writeTestFiles(t, map[string]string{
		"bad.bbcode": "oops]",
	})

	_, stderr, err := execute(t, "", "parse", "--config", cfg, "--color", "never",
		filepath.Join(dir, "bad.bbcode"))
	require.ErrorIs(t, err, cli.ErrParseFailed)
	assert.Equal(t, cli.ExitParseErrors, cli.ExitCodeFromError(err))

	assert.Contains(t, stderr, "bad.bbcode:1:5")
	assert.Contains(t, stderr, "unescaped ']' in text")
	assert.Contains(t, stderr, "oops]")
}

func TestIntegration_ParseInvalidFlags(t *testing.T) {
	t.Parallel()

	_, cfg := writeTestFiles(t, nil)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown format", []string{"--format", "yaml"}},
		{"unknown input", []string{"--from", "rst"}},
		{"negative jobs", []string{"--jobs", "-1"}},
		{"summary to dir", []string{"--format", "summary", "--output-dir", t.TempDir()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			args := append([]string{"parse", "--config", cfg, "-"}, tt.args...)
			_, _, err := execute(t, "x", args...)
			require.Error(t, err)
			assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(err))
		})
	}
}

func TestIntegration_ParseInvalidQuoteBackground(t *testing.T) {
	t.Parallel()

	_, cfg := writeTestFiles(t, nil)

	_, _, err := execute(t, "x", "parse", "--config", cfg, "--quote-background", "#12", "-")
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCodeFromError(err))
}

func TestIntegration_ParseMarkdown(t *testing.T) {
	t.Parallel()

	_, cfg := writeTestFiles(t, nil)

	stdout, _, err := execute(t, "**bold** and *it*\n", "parse", "--config", cfg, "--color", "never",
		"--from", "markdown", "-")
	require.NoError(t, err)

	assert.Contains(t, stdout, `Run "bold" bold=true`)
	assert.Contains(t, stdout, `Run "it" italic=true`)
}

func TestIntegration_ParseAutoDetect(t *testing.T) {
	t.Parallel()

	dir, cfg := writeTestFiles(t, map[string]string{
		"notes.md":     "**bold**\n",
		"intro.bbcode": "**[b]x[/b]**",
	})

	stdout, _, err := execute(t, "", "parse", "--config", cfg, "--color", "never",
		"--from", "auto", filepath.Join(dir, "notes.md"))
	require.NoError(t, err)
	assert.Contains(t, stdout, `Run "bold" bold=true`)

	stdout, _, err = execute(t, "", "parse", "--config", cfg, "--color", "never",
		"--from", "auto", filepath.Join(dir, "intro.bbcode"))
	require.NoError(t, err)
	assert.Contains(t, stdout, `Run "**"`)
	assert.Contains(t, stdout, `Run "x" bold=true`)
}

func TestIntegration_ParseOutputDir(t *testing.T) {
	t.Parallel()

	dir, cfg := writeTestFiles(t, map[string]string{
		"docs/a.bbcode":     "[b]a[/b]",
		"docs/sub/b.bbcode": "b",
	})
	outDir := t.TempDir()

	stdout, _, err := execute(t, "", "parse", "--config", cfg, "--color", "never",
		"--format", "xaml", "--output-dir", outDir, filepath.Join(dir, "docs"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "2 files parsed")

	a, err := os.ReadFile(filepath.Join(outDir, "a.xaml"))
	require.NoError(t, err)
	assert.Contains(t, string(a), `FontWeight="Bold"`)

	_, err = os.Stat(filepath.Join(outDir, "sub", "b.xaml"))
	assert.NoError(t, err)
}

func TestIntegration_TagsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		format       string
		wantContains []string
	}{
		{"text", "text", []string{"TAG", "ATTRIBUTE", "color", "[size=18]large[/size]"}},
		{"json", "json", []string{`"name": "url"`, `"attribute": "uri[|parameter[|target]]"`}},
		{"markdown", "markdown", []string{"# Supported tags", "| `quote` |"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := execute(t, "", "tags", "--color", "never", "--format", tt.format)
			require.NoError(t, err)
			for _, want := range tt.wantContains {
				assert.Contains(t, stdout, want)
			}
		})
	}
}

func TestIntegration_TagsJSONIsArray(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "tags", "--format", "json")
	require.NoError(t, err)

	var tags []map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &tags))
	assert.Len(t, tags, 12)
}

func TestIntegration_TagsUnknownFormat(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "", "tags", "--format", "xml")
	require.ErrorIs(t, err, cli.ErrInvalidUsage)
}

func TestIntegration_Compare(t *testing.T) {
	t.Parallel()

	dir, cfg := writeTestFiles(t, map[string]string{
		"a.bbcode":      "[b]same[/b]",
		"b.bbcode":      "[B]same[/B]",
		"c.bbcode":      "[i]same[/i]",
		"broken.bbcode": "[b",
	})

	t.Run("identical", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := execute(t, "", "compare", "--config", cfg, "--color", "never",
			filepath.Join(dir, "a.bbcode"), filepath.Join(dir, "b.bbcode"))
		require.NoError(t, err)
		assert.Contains(t, stdout, "trees are identical")
	})

	t.Run("different", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := execute(t, "", "compare", "--config", cfg, "--color", "never",
			filepath.Join(dir, "a.bbcode"), filepath.Join(dir, "c.bbcode"))
		require.ErrorIs(t, err, cli.ErrTreesDiffer)
		assert.Contains(t, stdout, `-  Run "same" bold=true`)
		assert.Contains(t, stdout, `+  Run "same" italic=true`)
		assert.Contains(t, stdout, "1 insertions(+), 1 deletions(-)")
	})

	t.Run("stdin side", func(t *testing.T) {
		t.Parallel()

		_, _, err := execute(t, "[b]same[/b]", "compare", "--config", cfg,
			filepath.Join(dir, "a.bbcode"), "-")
		require.NoError(t, err)
	})

	t.Run("parse failure", func(t *testing.T) {
		t.Parallel()

		_, stderr, err := execute(t, "", "compare", "--config", cfg, "--color", "never",
			filepath.Join(dir, "a.bbcode"), filepath.Join(dir, "broken.bbcode"))
		require.ErrorIs(t, err, cli.ErrParseFailed)
		assert.Contains(t, stderr, "unterminated tag")
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := execute(t, "", "compare", "--config", cfg,
			filepath.Join(dir, "a.bbcode"), filepath.Join(dir, "nope.bbcode"))
		require.Error(t, err)
		assert.Equal(t, cli.ExitIOError, cli.ExitCodeFromError(err))
	})
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		format   string
		minimal  bool
		contains string
		absent   string
	}{
		{"yaml", "yaml", false, "quote_background:", ""},
		{"toml", "toml", false, "[[elements]]", ""},
		{"minimal yaml", "yaml", true, "max_text_width: 0", "commands:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := filepath.Join(t.TempDir(), "config."+tt.format)
			args := []string{"init", "--format", tt.format, "--output", out}
			if tt.minimal {
				args = append(args, "--minimal")
			}

			stdout, _, err := execute(t, "", args...)
			require.NoError(t, err)
			assert.Contains(t, stdout, "created configuration file")

			data, err := os.ReadFile(out)
			require.NoError(t, err)
			assert.Contains(t, string(data), tt.contains)
			if tt.absent != "" {
				assert.NotContains(t, string(data), tt.absent)
			}

			// The generated file loads cleanly.
			_, _, err = execute(t, "x", "parse", "--config", out, "--format", "text", "-")
			require.NoError(t, err)
		})
	}
}

func TestIntegration_InitRefusesOverwrite(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), ".gobbcode.yml")
	require.NoError(t, os.WriteFile(out, []byte("# existing\n"), 0o644))

	_, _, err := execute(t, "", "init", "--output", out)
	require.ErrorIs(t, err, cli.ErrInvalidUsage)

	_, _, err = execute(t, "", "init", "--output", out, "--force")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "# existing")
}
