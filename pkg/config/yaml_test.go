package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobbcode/pkg/config"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, config.DefaultQuoteBackground, cfg.QuoteBackground)
	assert.Equal(t, []string{".bbcode", ".bb"}, cfg.Extensions)
	assert.Equal(t, config.FormatTree, cfg.Output.Format)
	assert.Equal(t, config.ColorAuto, cfg.Output.Color)
	assert.Equal(t, config.InputBBCode, cfg.From)
	assert.NotNil(t, cfg.Commands)
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Commands["app://open"] = config.CommandConfig{Name: "Open"}
	cfg.Elements = []config.ElementConfig{{Name: "viewer", Kind: "Panel"}}
	cfg.Jobs = 4

	data, err := cfg.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "quote_background:")
	assert.Contains(t, string(data), "#DDDDDD")
	assert.NotContains(t, string(data), "jobs")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, cfg.Commands, parsed.Commands)
	assert.Equal(t, cfg.Elements, parsed.Elements)
	assert.Equal(t, cfg.Output, parsed.Output)
	assert.Zero(t, parsed.Jobs)
}

func TestTOMLRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Commands["app://open"] = config.CommandConfig{Name: "Open", Description: "d"}
	cfg.Output.MaxTextWidth = 40

	data, err := cfg.ToTOML()
	require.NoError(t, err)

	parsed, err := config.FromTOML(data)
	require.NoError(t, err)
	assert.Equal(t, cfg.QuoteBackground, parsed.QuoteBackground)
	assert.Equal(t, cfg.Commands, parsed.Commands)
	assert.Equal(t, 40, parsed.Output.MaxTextWidth)
}

func TestFromYAMLInvalid(t *testing.T) {
	t.Parallel()

	_, err := config.FromYAML([]byte("extensions: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse yaml")

	_, err = config.FromTOML([]byte("extensions = ["))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse toml")
}

func TestClone(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Ignore = []string{"vendor/**"}
	cfg.Commands["a://b"] = config.CommandConfig{Name: "B"}
	cfg.OutputDir = "out"

	clone := cfg.Clone()
	clone.Ignore[0] = "changed"
	clone.Extensions = append(clone.Extensions, ".txt")
	delete(clone.Commands, "a://b")

	assert.Equal(t, []string{"vendor/**"}, cfg.Ignore)
	assert.Len(t, cfg.Extensions, 2)
	assert.Contains(t, cfg.Commands, "a://b")
	assert.Equal(t, "out", clone.OutputDir)

	var nilCfg *config.Config
	assert.Nil(t, nilCfg.Clone())
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	yamlData, err := config.GenerateTemplate(config.TemplateOptions{Format: "yaml"})
	require.NoError(t, err)
	parsed, err := config.FromYAML(yamlData)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultQuoteBackground, parsed.QuoteBackground)
	assert.Equal(t, "Open", parsed.Commands["app://open"].Name)
	assert.Equal(t, []config.ElementConfig{{Name: "viewer", Kind: "Panel"}}, parsed.Elements)

	tomlData, err := config.GenerateTemplate(config.TemplateOptions{Format: "toml"})
	require.NoError(t, err)
	parsed, err = config.FromTOML(tomlData)
	require.NoError(t, err)
	assert.Equal(t, config.FormatTree, parsed.Output.Format)
	assert.Equal(t, "Open", parsed.Commands["app://open"].Name)

	minimal, err := config.GenerateTemplate(config.TemplateOptions{Format: "yaml", Minimal: true})
	require.NoError(t, err)
	assert.NotContains(t, string(minimal), "commands:")

	_, err = config.GenerateTemplate(config.TemplateOptions{Format: "ini"})
	assert.ErrorIs(t, err, config.ErrUnknownTemplateFormat)
}

func TestFormatValidity(t *testing.T) {
	t.Parallel()

	assert.True(t, config.FormatXAML.IsValid())
	assert.False(t, config.OutputFormat("sarif").IsValid())
	assert.True(t, config.InputMarkdown.IsValid())
	assert.False(t, config.InputFormat("html").IsValid())
	assert.True(t, config.ColorNever.IsValid())
	assert.False(t, config.ColorMode("sometimes").IsValid())
}
