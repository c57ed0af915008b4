package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobbcode/internal/ui/pretty"
	"github.com/yaklabco/gobbcode/pkg/config"
)

func TestNewStyles_ColorDisabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	assert.Equal(t, "test", styles.Bold.Render("test"))
	assert.Equal(t, "test", styles.Link.Render("test"))
	assert.Equal(t, "test", styles.Error.Render("test"))
}

func TestIsColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	assert.True(t, pretty.IsColorEnabled(config.ColorAlways, &buf))
	assert.False(t, pretty.IsColorEnabled(config.ColorNever, os.Stdout))
	assert.False(t, pretty.IsColorEnabled(config.ColorAuto, &buf), "a buffer is not a terminal")

	t.Setenv("NO_COLOR", "1")
	assert.False(t, pretty.IsColorEnabled(config.ColorAuto, os.Stdout))
	assert.True(t, pretty.IsColorEnabled(config.ColorAlways, os.Stdout), "always ignores NO_COLOR")
}

func TestIsTerminal_NonFile(t *testing.T) {
	t.Parallel()

	assert.False(t, pretty.IsTerminal(&bytes.Buffer{}))
	assert.False(t, pretty.IsTerminal(nil))
}
