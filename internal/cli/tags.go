package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gobbcode/internal/ui/pretty"
	"github.com/yaklabco/gobbcode/pkg/bbcode"
	"github.com/yaklabco/gobbcode/pkg/config"
)

const (
	formatText     = "text"
	formatJSON     = "json"
	formatMarkdown = "markdown"

	// defaultTermWidth is used when the output is not a terminal.
	defaultTermWidth = 100
)

type tagsFlags struct {
	format string
}

// tagInfo represents a tag in JSON output.
type tagInfo struct {
	Name        string `json:"name"`
	Attribute   string `json:"attribute,omitempty"`
	Description string `json:"description"`
	Example     string `json:"example"`
}

func newTagsCommand() *cobra.Command {
	flags := &tagsFlags{}

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List supported markup tags",
		Long: `List every tag the parser understands with its attribute form, a short
description and an example. Tag names are case-insensitive and unknown tags
are ignored.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTags(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", formatText,
		"output format: text, json, markdown")

	return cmd
}

func runTags(cmd *cobra.Command, flags *tagsFlags) error {
	out := cmd.OutOrStdout()
	tags := bbcode.Tags()

	color := config.ColorAuto
	if value, err := cmd.Flags().GetString("color"); err == nil {
		color = config.ColorMode(value)
	}

	switch flags.format {
	case formatJSON:
		return outputTagsJSON(out, tags)
	case formatMarkdown:
		return outputTagsMarkdown(out, tags, color)
	case formatText:
		styles := pretty.NewStyles(pretty.IsColorEnabled(color, out))
		table := pretty.NewTagTableFormatter(styles, terminalWidth(out))
		if _, err := io.WriteString(out, table.FormatTags(tags)); err != nil {
			return fmt.Errorf("write tags: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown format %q for tags", ErrInvalidUsage, flags.format)
	}
}

// outputTagsJSON outputs tags as a JSON array.
func outputTagsJSON(out io.Writer, tags []bbcode.TagInfo) error {
	infos := make([]tagInfo, 0, len(tags))
	for _, tag := range tags {
		infos = append(infos, tagInfo{
			Name:        tag.Name,
			Attribute:   tag.Attribute,
			Description: tag.Description,
			Example:     tag.Example,
		})
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding tags: %w", err)
	}
	return nil
}

// outputTagsMarkdown writes the tag reference as a Markdown table, rendered
// for the terminal when out is one and color is not disabled.
func outputTagsMarkdown(out io.Writer, tags []bbcode.TagInfo, color config.ColorMode) error {
	markdown := TagsMarkdown(tags)

	if color != config.ColorNever && pretty.IsTerminal(out) {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(terminalWidth(out)),
		)
		if err != nil {
			return fmt.Errorf("create markdown renderer: %w", err)
		}
		rendered, err := renderer.Render(markdown)
		if err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		markdown = rendered
	}

	if _, err := io.WriteString(out, markdown); err != nil {
		return fmt.Errorf("write tags: %w", err)
	}
	return nil
}

// TagsMarkdown formats the tag reference as a Markdown document.
func TagsMarkdown(tags []bbcode.TagInfo) string {
	var b strings.Builder

	b.WriteString("# Supported tags\n\n")
	b.WriteString("| Tag | Attribute | Description | Example |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, tag := range tags {
		attr := tag.Attribute
		if attr == "" {
			attr = "-"
		}
		fmt.Fprintf(&b, "| `%s` | %s | %s | `%s` |\n",
			tag.Name, escapeCell(attr), escapeCell(tag.Description), tag.Example)
	}
	b.WriteString("\nTag names are case-insensitive. Unknown tags are ignored.\n")

	return b.String()
}

func escapeCell(text string) string {
	return strings.ReplaceAll(text, "|", `\|`)
}

// terminalWidth returns the width of out when it is a terminal.
func terminalWidth(out io.Writer) int {
	file, ok := out.(*os.File)
	if !ok {
		return defaultTermWidth
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return defaultTermWidth
	}
	return width
}
