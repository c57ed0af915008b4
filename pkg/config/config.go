// Package config defines core configuration types for gobbcode.
// These types are pure data structures with no dependency on how they are loaded.
package config

// DefaultQuoteBackground is the background color applied inside quote tags.
const DefaultQuoteBackground = "#DDDDDD"

// QuoteBackgroundNone disables the quote background.
const QuoteBackgroundNone = "none"

// OutputFormat specifies how parse results are written.
type OutputFormat string

const (
	FormatTree    OutputFormat = "tree"
	FormatJSON    OutputFormat = "json"
	FormatXAML    OutputFormat = "xaml"
	FormatText    OutputFormat = "text"
	FormatSummary OutputFormat = "summary"
)

// IsValid reports whether the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatTree, FormatJSON, FormatXAML, FormatText, FormatSummary:
		return true
	default:
		return false
	}
}

// InputFormat specifies the markup of input files.
type InputFormat string

const (
	InputBBCode   InputFormat = "bbcode"
	InputMarkdown InputFormat = "markdown"

	// InputAuto picks bbcode or markdown per file from its extension and
	// content.
	InputAuto InputFormat = "auto"
)

// IsValid reports whether the input format is known.
func (f InputFormat) IsValid() bool {
	return f == InputBBCode || f == InputMarkdown || f == InputAuto
}

// ColorMode controls colored terminal output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid reports whether the color mode is known.
func (m ColorMode) IsValid() bool {
	return m == ColorAuto || m == ColorAlways || m == ColorNever
}

// CommandConfig registers a command link target.
type CommandConfig struct {
	Name        string `yaml:"name" toml:"name"`
	Description string `yaml:"description,omitempty" toml:"description,omitempty"`
}

// ElementConfig declares a named element that command links may target.
type ElementConfig struct {
	Name string `yaml:"name" toml:"name"`
	Kind string `yaml:"kind,omitempty" toml:"kind,omitempty"`
}

// OutputConfig controls result rendering.
type OutputConfig struct {
	Format OutputFormat `yaml:"format" toml:"format"`
	Color  ColorMode    `yaml:"color" toml:"color"`

	// MaxTextWidth truncates long runs in tree output. 0 disables truncation.
	MaxTextWidth int `yaml:"max_text_width" toml:"max_text_width"`
}

// Config is the root configuration structure for gobbcode.
type Config struct {
	// QuoteBackground is the color literal applied inside [quote] tags,
	// or QuoteBackgroundNone.
	QuoteBackground string `yaml:"quote_background" toml:"quote_background"`

	// Extensions lists the file extensions picked up when walking directories.
	Extensions []string `yaml:"extensions" toml:"extensions"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	// Commands maps a link URI to the command it invokes.
	Commands map[string]CommandConfig `yaml:"commands,omitempty" toml:"commands,omitempty"`

	// Elements lists named elements that command links may target.
	Elements []ElementConfig `yaml:"elements,omitempty" toml:"elements,omitempty"`

	Output OutputConfig `yaml:"output" toml:"output"`

	// CLI-level options (not persisted to config files).

	// Jobs specifies the number of parallel workers. 0 means one per CPU.
	Jobs int `yaml:"-" toml:"-"`

	// From selects the input markup.
	From InputFormat `yaml:"-" toml:"-"`

	// OutputDir, when set, writes one result file per input instead of stdout.
	OutputDir string `yaml:"-" toml:"-"`
}

// DefaultExtensions returns the file extensions parsed by default.
func DefaultExtensions() []string {
	return []string{".bbcode", ".bb"}
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		QuoteBackground: DefaultQuoteBackground,
		Extensions:      DefaultExtensions(),
		Commands:        make(map[string]CommandConfig),
		Output: OutputConfig{
			Format: FormatTree,
			Color:  ColorAuto,
		},
		Jobs: 0,
		From: InputBBCode,
	}
}
