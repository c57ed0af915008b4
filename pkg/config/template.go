package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTemplateFormat is returned for template formats other than yaml and toml.
var ErrUnknownTemplateFormat = errors.New("unknown template format")

const templateHeader = `gobbcode configuration
See: https://github.com/yaklabco/gobbcode`

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is the file format: "yaml" or "toml".
	Format string

	// Minimal omits the example commands and elements.
	Minimal bool
}

// GenerateTemplate creates a commented configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch strings.ToLower(opts.Format) {
	case "", "yaml", "yml":
		return []byte(yamlTemplate(opts)), nil
	case "toml":
		return []byte(tomlTemplate(opts)), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTemplateFormat, opts.Format)
	}
}

func commentLines(prefix, text string) string {
	var b strings.Builder
	for line := range strings.SplitSeq(text, "\n") {
		b.WriteString(prefix)
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

func yamlTemplate(opts TemplateOptions) string {
	var b strings.Builder
	b.WriteString(commentLines("# ", templateHeader))
	b.WriteString(`
# Background color inside [quote] tags: #RGB, #ARGB, #RRGGBB, #AARRGGBB or a name.
# Set to none to disable.
quote_background: "` + DefaultQuoteBackground + `"

# File extensions picked up when walking directories.
extensions:
  - .bbcode
  - .bb

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"

output:
  # tree, json, xaml, text or summary
  format: tree
  # auto, always or never
  color: auto
  # Truncate long runs in tree output (0 = no limit)
  max_text_width: 0
`)
	if opts.Minimal {
		return b.String()
	}
	b.WriteString(`
# Link URIs that resolve to commands. [url=app://open|readme|viewer] becomes a
# command link with parameter "readme" targeting the element "viewer".
commands:
  "app://open":
    name: Open
    description: Open a document in a viewer

# Named elements that command links may target.
elements:
  - name: viewer
    kind: Panel
`)
	return b.String()
}

func tomlTemplate(opts TemplateOptions) string {
	var b strings.Builder
	b.WriteString(commentLines("# ", templateHeader))
	b.WriteString(`
# Background color inside [quote] tags: #RGB, #ARGB, #RRGGBB, #AARRGGBB or a name.
# Set to none to disable.
quote_background = "` + DefaultQuoteBackground + `"

# File extensions picked up when walking directories.
extensions = [".bbcode", ".bb"]

# File patterns to ignore (glob patterns)
# ignore = ["vendor/**"]

[output]
# tree, json, xaml, text or summary
format = "tree"
# auto, always or never
color = "auto"
# Truncate long runs in tree output (0 = no limit)
max_text_width = 0
`)
	if opts.Minimal {
		return b.String()
	}
	b.WriteString(`
# Link URIs that resolve to commands. [url=app://open|readme|viewer] becomes a
# command link with parameter "readme" targeting the element "viewer".
[commands."app://open"]
name = "Open"
description = "Open a document in a viewer"

# Named elements that command links may target.
[[elements]]
name = "viewer"
kind = "Panel"
`)
	return b.String()
}
