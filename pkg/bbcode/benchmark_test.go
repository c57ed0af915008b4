package bbcode_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/gobbcode/pkg/bbcode"
	"github.com/yaklabco/gobbcode/pkg/command"
	"github.com/yaklabco/gobbcode/pkg/config"
)

const benchmarkMarkup = `[size=18][b]Release notes[/b][/size]
[i]Highlights[/i] for this build, with [color=#FF336699]colored[/color] and [s]struck[/s] text.
[quote]Quoted text keeps its [u]own[/u] styling.[/quote]
[list][li]first item[/li][li]second [b]bold[/b] item[/li][/list]
[ol][li]one[/li][li]two[/li][/ol]
See [url=https://example.com/docs]the docs[/url] or [url=app://open|readme|viewer]open it[/url].[br]
Escaped \[brackets\] and a backslash \\ survive.
`

// Benchmark tokenizing a representative document.
func BenchmarkTokenize(b *testing.B) {
	input := strings.Repeat(benchmarkMarkup, 20)

	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for range b.N {
		if _, err := bbcode.Tokenize(input); err != nil {
			b.Fatal(err)
		}
	}
}

// Benchmark parsing with command links resolved.
func BenchmarkParse(b *testing.B) {
	input := strings.Repeat(benchmarkMarkup, 20)

	commands, err := command.FromConfig(map[string]config.CommandConfig{
		"app://open": {Name: "Open"},
	})
	if err != nil {
		b.Fatal(err)
	}
	elements, err := command.ElementsFromConfig([]config.ElementConfig{{Name: "viewer", Kind: "Panel"}})
	if err != nil {
		b.Fatal(err)
	}

	quote, err := bbcode.ParseColor(config.DefaultQuoteBackground)
	if err != nil {
		b.Fatal(err)
	}

	opts := []bbcode.Option{
		bbcode.WithCommands(commands),
		bbcode.WithElements(elements),
		bbcode.WithQuoteBackground(quote),
	}

	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for range b.N {
		tree, err := bbcode.Parse(input, opts...)
		if err != nil || tree == nil {
			b.Fatal(err)
		}
	}
}
