package bbcode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobbcode/pkg/bbcode"
)

func TestParseNavigateTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		uri       string
		parameter *string
		target    *string
	}{
		{"uri only", "https://example.com/a?b=c", "https://example.com/a?b=c", nil, nil},
		{"relative uri", "/docs/intro", "/docs/intro", nil, nil},
		{"with parameter", "cmd://foo|p1", "cmd://foo", ptr("p1"), nil},
		{"with target", "cmd://foo|p1|target1", "cmd://foo", ptr("p1"), ptr("target1")},
		{"empty parameter", "cmd://foo||t", "cmd://foo", ptr(""), ptr("t")},
		{"escaped parts", "cmd://foo|a%7Cb|x%20y", "cmd://foo", ptr("a|b"), ptr("x y")},
		{"extra pipes stay in target", "cmd://foo|a|b|c", "cmd://foo", ptr("a"), ptr("b|c")},
		{"empty uri", "|p", "", ptr("p"), nil},
		{"literal percent", "cmd://zoom|50%|view", "cmd://zoom", ptr("50%"), ptr("view")},
		{"malformed escape kept", "cmd://foo|%zz", "cmd://foo", ptr("%zz"), nil},
		{"valid escapes next to malformed", "cmd://foo|a%20b%zz|%", "cmd://foo", ptr("a b%zz"), ptr("%")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := bbcode.ParseNavigateTarget(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.uri, got.URI)
			assert.Equal(t, tt.parameter, got.Parameter)
			assert.Equal(t, tt.target, got.TargetName)
		})
	}
}

func TestParseNavigateTargetErrors(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"http://[::1", "http://[::1|p|t", "http://%zz/"} {
		_, err := bbcode.ParseNavigateTarget(input)
		assert.Error(t, err, "input %q", input)
	}
}
