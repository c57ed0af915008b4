package bbcode

import (
	"strconv"

	"github.com/yaklabco/gobbcode/pkg/bbast"
)

// bullet is the marker for items of an unordered list.
const bullet = "  •  "

// StyleContext is the mutable formatting state of a single parse. Tags set
// and clear fields directly; there is no stack, so with overlapping tags the
// last close wins.
type StyleContext struct {
	FontSize       *float64
	Bold           bool
	Italic         bool
	Decoration     bbast.Decoration
	Foreground     *bbast.Color
	Background     *bbast.Color
	NavigateTarget string

	InList        bool
	InOrderedList bool
	ListCounter   int
	FirstListItem bool
	InListItem    bool
}

// Snapshot captures the currently set formatting attributes for a Run.
// It returns nil when nothing is set.
func (c *StyleContext) Snapshot() *bbast.Style {
	style := &bbast.Style{
		FontSize:   c.FontSize,
		Bold:       c.Bold,
		Italic:     c.Italic,
		Decoration: c.Decoration,
		Foreground: c.Foreground,
		Background: c.Background,
	}
	if style.IsZero() {
		return nil
	}
	return style.Clone()
}

// nextListMarker returns the marker for a new list item, advancing the
// counter of an ordered list.
func (c *StyleContext) nextListMarker() string {
	if !c.InOrderedList {
		return bullet
	}
	c.ListCounter++
	return "  " + strconv.Itoa(c.ListCounter) + ".  "
}

// apply performs the state transition of tag. attr is the attribute of an
// opening tag, nil when none was given.
func (c *StyleContext) apply(tag Tag, start bool, attr *string, quote *bbast.Color) error {
	switch tag {
	case TagBold:
		c.Bold = start
	case TagItalic:
		c.Italic = start
	case TagUnderline:
		c.setDecoration(start, bbast.DecorationUnderline)
	case TagStrikethrough:
		c.setDecoration(start, bbast.DecorationStrikethrough)
	case TagColor:
		if !start {
			c.Foreground = nil
			return nil
		}
		if attr == nil {
			return nil
		}
		color, err := ParseColor(*attr)
		if err != nil {
			return &ConversionError{Tag: tag, Value: *attr, Err: err}
		}
		c.Foreground = &color
	case TagSize:
		if !start {
			c.FontSize = nil
			return nil
		}
		if attr == nil {
			return nil
		}
		size, err := ParseFontSize(*attr)
		if err != nil {
			return &ConversionError{Tag: tag, Value: *attr, Err: err}
		}
		c.FontSize = &size
	case TagQuote:
		c.Background = nil
		if start && quote != nil {
			bg := *quote
			c.Background = &bg
		}
	case TagURL:
		if !start {
			c.NavigateTarget = ""
		} else if attr != nil {
			c.NavigateTarget = *attr
		}
	case TagList:
		c.InList = start
		c.FirstListItem = true
	case TagOrderedList:
		c.InOrderedList = start
		c.ListCounter = 0
		c.FirstListItem = true
	case TagListItem:
		c.InListItem = start
	case TagUnknown, TagLineBreak:
	}
	return nil
}

func (c *StyleContext) setDecoration(start bool, decoration bbast.Decoration) {
	if start {
		c.Decoration = decoration
	} else {
		c.Decoration = bbast.DecorationNone
	}
}
