package bbcode

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/yaklabco/gobbcode/pkg/bbast"
)

var (
	errEmptyLiteral  = errors.New("empty value")
	errBadHexLength  = errors.New("hex color must have 3, 4, 6 or 8 digits")
	errBadHexDigit   = errors.New("invalid hex digit")
	errUnknownColor  = errors.New("unknown color name")
	errFontSizeRange = errors.New("font size must be a positive finite number")
)

// ParseColor converts a color literal into a Color. Accepted forms are
// #RGB, #ARGB, #RRGGBB, #AARRGGBB, "transparent", and the SVG 1.1 color
// names, matched case-insensitively.
func ParseColor(value string) (bbast.Color, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return bbast.Color{}, errEmptyLiteral
	}

	if hex, ok := strings.CutPrefix(value, "#"); ok {
		return parseHexColor(hex)
	}

	name := strings.ToLower(value)
	if name == "transparent" {
		return bbast.Color{}, nil
	}
	named, ok := colornames.Map[name]
	if !ok {
		return bbast.Color{}, fmt.Errorf("%w: %s", errUnknownColor, value)
	}
	return bbast.Color{A: named.A, R: named.R, G: named.G, B: named.B}, nil
}

func parseHexColor(hex string) (bbast.Color, error) {
	for _, c := range hex {
		if !isHexDigit(c) {
			return bbast.Color{}, fmt.Errorf("%w %q", errBadHexDigit, c)
		}
	}

	var alpha uint8 = 0xFF
	switch len(hex) {
	case 3, 6:
	case 4:
		a, err := strconv.ParseUint(hex[:1], 16, 8)
		if err != nil {
			return bbast.Color{}, fmt.Errorf("alpha channel: %w", err)
		}
		alpha = uint8(a * 0x11)
		hex = hex[1:]
	case 8:
		a, err := strconv.ParseUint(hex[:2], 16, 8)
		if err != nil {
			return bbast.Color{}, fmt.Errorf("alpha channel: %w", err)
		}
		alpha = uint8(a)
		hex = hex[2:]
	default:
		return bbast.Color{}, errBadHexLength
	}

	rgb, err := colorful.Hex("#" + hex)
	if err != nil {
		return bbast.Color{}, err
	}
	r, g, b := rgb.RGB255()
	return bbast.Color{A: alpha, R: r, G: g, B: b}, nil
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// ParseFontSize converts a size literal into a font size.
func ParseFontSize(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, errEmptyLiteral
	}
	size, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if size <= 0 || math.IsInf(size, 0) || math.IsNaN(size) {
		return 0, errFontSizeRange
	}
	return size, nil
}
