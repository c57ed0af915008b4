package reporter

import "fmt"

// Format represents an output format.
type Format string

// Output formats supported by the reporter.
const (
	FormatTree    Format = "tree"
	FormatJSON    Format = "json"
	FormatXAML    Format = "xaml"
	FormatText    Format = "text"
	FormatSummary Format = "summary"
)

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(formatStr string) (Format, error) {
	switch formatStr {
	case "tree", "":
		return FormatTree, nil
	case "json":
		return FormatJSON, nil
	case "xaml":
		return FormatXAML, nil
	case "text":
		return FormatText, nil
	case "summary":
		return FormatSummary, nil
	default:
		return "", fmt.Errorf("unknown format %q; valid formats: tree, json, xaml, text, summary", formatStr)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatTree, FormatJSON, FormatXAML, FormatText, FormatSummary:
		return true
	default:
		return false
	}
}

// Extension returns the file extension used when writing one output file
// per input. Summary has no per-file form and returns "".
func (f Format) Extension() string {
	switch f {
	case FormatTree:
		return ".tree"
	case FormatJSON:
		return ".json"
	case FormatXAML:
		return ".xaml"
	case FormatText:
		return ".txt"
	default:
		return ""
	}
}
