package bbcode

import (
	"fmt"
	"net/url"
	"strings"
)

// NavigateTarget is the parsed form of a url tag attribute,
// "uri[|parameter[|target]]".
type NavigateTarget struct {
	URI        string
	Parameter  *string
	TargetName *string
}

// ParseNavigateTarget splits value on '|' into at most three parts. The uri
// part must parse as an absolute or relative URI reference, and may be empty.
// The parameter and target parts are percent-decoded; malformed escapes in
// them are kept as written and never fail the parse.
func ParseNavigateTarget(value string) (NavigateTarget, error) {
	parts := strings.SplitN(value, "|", 3)

	target := NavigateTarget{URI: parts[0]}
	if _, err := url.Parse(target.URI); err != nil {
		return NavigateTarget{}, fmt.Errorf("parse uri: %w", err)
	}

	if len(parts) > 1 {
		param := unescapeLenient(parts[1])
		target.Parameter = &param
	}
	if len(parts) > 2 {
		name := unescapeLenient(parts[2])
		target.TargetName = &name
	}

	return target, nil
}

// unescapeLenient decodes every well-formed %XX escape in s and copies
// anything else through unchanged, so "50%" and "%zz" survive as written.
func unescapeLenient(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	if decoded, err := url.PathUnescape(s); err == nil {
		return decoded
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case c >= 'a':
		return c - 'a' + 10
	case c >= 'A':
		return c - 'A' + 10
	default:
		return c - '0'
	}
}
