package configloader

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gobbcode/pkg/bbcode"
	"github.com/yaklabco/gobbcode/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "output.format").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) addError(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) addWarning(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a configuration for errors and warnings.
// Empty fields are treated as unset and are not reported.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.QuoteBackground != "" && cfg.QuoteBackground != config.QuoteBackgroundNone {
		if _, err := bbcode.ParseColor(cfg.QuoteBackground); err != nil {
			result.addError("quote_background", cfg.QuoteBackground,
				"invalid color %q: %v", cfg.QuoteBackground, err)
		}
	}

	if cfg.Output.Format != "" && !cfg.Output.Format.IsValid() {
		result.addError("output.format", cfg.Output.Format,
			"invalid format %q; must be one of: tree, json, xaml, text, summary", cfg.Output.Format)
	}
	if cfg.Output.Color != "" && !cfg.Output.Color.IsValid() {
		result.addError("output.color", cfg.Output.Color,
			"invalid color mode %q; must be one of: auto, always, never", cfg.Output.Color)
	}
	if cfg.Output.MaxTextWidth < 0 {
		result.addError("output.max_text_width", cfg.Output.MaxTextWidth, "max_text_width must be >= 0 (0 means no limit)")
	}
	if cfg.From != "" && !cfg.From.IsValid() {
		result.addError("from", cfg.From, "invalid input format %q; must be one of: bbcode, markdown, auto", cfg.From)
	}
	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	validateCommands(cfg, result)
	validateElements(cfg, result)
	validateExtensions(cfg, result)
	validateIgnorePatterns(cfg, result)

	return result
}

// validateCommands checks that every command key is a usable link URI.
func validateCommands(cfg *config.Config, result *ValidationResult) {
	for uri, cmd := range cfg.Commands {
		field := "commands." + uri
		if strings.TrimSpace(uri) == "" {
			result.addError("commands", uri, "command uri must not be empty")
			continue
		}
		if strings.Contains(uri, "|") {
			result.addError(field, uri, "command uri must not contain '|'")
			continue
		}
		if _, err := url.Parse(uri); err != nil {
			result.addError(field, uri, "invalid uri: %v", err)
			continue
		}
		if cmd.Name == "" {
			result.addWarning(field, uri, "command %q has no name; the uri will be shown instead", uri)
		}
	}
}

// validateElements checks element names are present and unique.
func validateElements(cfg *config.Config, result *ValidationResult) {
	seen := make(map[string]bool, len(cfg.Elements))
	for i, element := range cfg.Elements {
		field := fmt.Sprintf("elements[%d]", i)
		if element.Name == "" {
			result.addError(field, element, "element name must not be empty")
			continue
		}
		if seen[element.Name] {
			result.addError(field, element.Name, "duplicate element name %q", element.Name)
		}
		seen[element.Name] = true
	}
}

// validateExtensions warns about extensions that will never match.
func validateExtensions(cfg *config.Config, result *ValidationResult) {
	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.addWarning(fmt.Sprintf("extensions[%d]", i), ext,
				"extension %q does not start with '.' and will not match any file", ext)
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.addError(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return f.IsValid()
}
