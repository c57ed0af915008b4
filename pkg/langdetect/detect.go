// Package langdetect decides which markup an input is written in, so a
// single run can mix BBCode and Markdown files.
package langdetect

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/gobbcode/pkg/bbcode"
	"github.com/yaklabco/gobbcode/pkg/config"
)

// enryMarkdown is the linguist name for Markdown.
const enryMarkdown = "Markdown"

// minMarkdownSignals is how many Markdown constructs content needs before
// it is treated as Markdown without a file extension to go on.
const minMarkdownSignals = 2

// Detect returns the input format of content. path may be empty, as for
// standard input. Anything that is not clearly Markdown is BBCode.
func Detect(path string, content []byte) config.InputFormat {
	// Strategy 1: the file extension. Linguist knows every Markdown
	// extension (.md, .markdown, .mkd, .mdown, ...) but not ours.
	if path != "" {
		if slices.Contains(config.DefaultExtensions(), strings.ToLower(filepath.Ext(path))) {
			return config.InputBBCode
		}
		for _, lang := range enry.GetLanguagesByExtension(path, content, nil) {
			if lang == enryMarkdown {
				return config.InputMarkdown
			}
		}
	}

	if len(bytes.TrimSpace(content)) == 0 {
		return config.InputBBCode
	}

	// Strategy 2: any recognized tag settles it.
	if hasKnownTag(content) {
		return config.InputBBCode
	}

	// Strategy 3: enough Markdown constructs.
	if markdownSignals(content) >= minMarkdownSignals {
		return config.InputMarkdown
	}

	return config.InputBBCode
}

// hasKnownTag reports whether content contains an opening or closing tag
// the parser understands, such as [b], [/i] or [color=red].
func hasKnownTag(content []byte) bool {
	rest := content
	for {
		open := bytes.IndexByte(rest, '[')
		if open < 0 {
			return false
		}
		rest = rest[open+1:]

		end := bytes.IndexAny(rest, "]=[\n")
		if end < 0 {
			return false
		}
		if rest[end] == '[' || rest[end] == '\n' {
			continue
		}

		name := bytes.TrimPrefix(rest[:end], []byte("/"))
		if bbcode.LookupTag(string(name)) != bbcode.TagUnknown {
			return true
		}
	}
}

// markdownSignals counts distinct Markdown constructs in content.
func markdownSignals(content []byte) int {
	var heading, list, fence, quote bool

	for line := range bytes.SplitSeq(content, []byte("\n")) {
		trimmed := bytes.TrimLeft(line, " ")
		switch {
		case bytes.HasPrefix(trimmed, []byte("```")), bytes.HasPrefix(trimmed, []byte("~~~")):
			fence = true
		case isATXHeading(trimmed):
			heading = true
		case bytes.HasPrefix(trimmed, []byte("- ")), bytes.HasPrefix(trimmed, []byte("* ")),
			bytes.HasPrefix(trimmed, []byte("+ ")):
			list = true
		case bytes.HasPrefix(trimmed, []byte("> ")):
			quote = true
		}
	}

	signals := 0
	for _, found := range []bool{
		heading,
		list,
		fence,
		quote,
		bytes.Contains(content, []byte("**")) || bytes.Contains(content, []byte("__")),
		bytes.Contains(content, []byte("](")),
	} {
		if found {
			signals++
		}
	}
	return signals
}

func isATXHeading(line []byte) bool {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	return level >= 1 && level <= 6 && level < len(line) && line[level] == ' '
}
