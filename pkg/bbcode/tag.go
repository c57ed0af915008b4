package bbcode

import "strings"

// Tag is the closed set of tags the parser understands.
type Tag uint8

const (
	TagUnknown Tag = iota
	TagBold
	TagItalic
	TagUnderline
	TagStrikethrough
	TagColor
	TagSize
	TagQuote
	TagURL
	TagList
	TagOrderedList
	TagListItem
	TagLineBreak
)

// TagInfo describes a supported tag for reference output.
type TagInfo struct {
	Tag         Tag
	Name        string
	Attribute   string
	Description string
	Example     string
}

//nolint:gochecknoglobals // Static lookup table
var tagTable = []TagInfo{
	{TagBold, "b", "", "Bold text.", "[b]bold[/b]"},
	{TagItalic, "i", "", "Italic text.", "[i]italic[/i]"},
	{TagUnderline, "u", "", "Underlined text. Replaces any strikethrough.", "[u]underline[/u]"},
	{TagStrikethrough, "s", "", "Struck-through text. Replaces any underline.", "[s]struck[/s]"},
	{TagColor, "color", "color", "Foreground color: #RGB, #ARGB, #RRGGBB, #AARRGGBB or a color name.", "[color=#ff0000]red[/color]"},
	{TagSize, "size", "number", "Font size.", "[size=18]large[/size]"},
	{TagQuote, "quote", "", "Quote background.", "[quote]quoted[/quote]"},
	{TagURL, "url", "uri[|parameter[|target]]", "Hyperlink or command link.", "[url=https://example.com]site[/url]"},
	{TagList, "list", "", "Bulleted list.", "[list][li]item[/li][/list]"},
	{TagOrderedList, "ol", "", "Numbered list.", "[ol][li]first[/li][/ol]"},
	{TagListItem, "li", "", "List item. Emits its marker on open and a line break on close.", "[li]item[/li]"},
	{TagLineBreak, "br", "", "Line break. Has no closing form.", "one[br]two"},
}

//nolint:gochecknoglobals // Built once from tagTable
var tagsByName = func() map[string]Tag {
	m := make(map[string]Tag, len(tagTable))
	for _, info := range tagTable {
		m[info.Name] = info.Tag
	}
	return m
}()

// LookupTag maps a tag name to its Tag, ignoring case and surrounding
// whitespace. Unknown names return TagUnknown.
func LookupTag(name string) Tag {
	return tagsByName[strings.ToLower(strings.TrimSpace(name))]
}

// Tags returns reference information for every supported tag.
func Tags() []TagInfo {
	out := make([]TagInfo, len(tagTable))
	copy(out, tagTable)
	return out
}

// String returns the tag's markup name, or "unknown".
func (t Tag) String() string {
	if t == TagUnknown || int(t) > len(tagTable) {
		return "unknown"
	}
	return tagTable[t-1].Name
}

// TakesAttribute reports whether an opening tag consumes a following
// attribute token.
func (t Tag) TakesAttribute() bool {
	switch t {
	case TagColor, TagSize, TagURL:
		return true
	default:
		return false
	}
}
