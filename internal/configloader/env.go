package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/gobbcode/pkg/config"
)

// envVarPrefix is the prefix for all gobbcode environment variables.
const envVarPrefix = "GOBBCODE_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeInt
	envTypeSlice
)

// envMapping defines an environment variable to config field mapping.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"QUOTE_BACKGROUND": {"quote_background", envTypeString, "Quote background color literal, or none"},
	"FORMAT":           {"output.format", envTypeString, "Output format: tree, json, xaml, text or summary"},
	"COLOR":            {"output.color", envTypeString, "Color mode: auto, always or never"},
	"MAX_TEXT_WIDTH":   {"output.max_text_width", envTypeInt, "Truncate runs in tree output (0 = no limit)"},
	"FROM":             {"from", envTypeString, "Input markup: bbcode, markdown or auto"},
	"JOBS":             {"jobs", envTypeInt, "Number of parallel workers (0 = auto)"},
	"EXTENSIONS":       {"extensions", envTypeSlice, "Comma-separated list of file extensions"},
	"IGNORE":           {"ignore", envTypeSlice, "Comma-separated list of ignore patterns"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with GOBBCODE_ (e.g., GOBBCODE_FORMAT).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "quote_background":
		cfg.QuoteBackground = value
	case "output.format":
		cfg.Output.Format = config.OutputFormat(value)
	case "output.color":
		cfg.Output.Color = config.ColorMode(value)
	case "from":
		cfg.From = config.InputFormat(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	case "output.max_text_width":
		cfg.Output.MaxTextWidth = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	case "extensions":
		cfg.Extensions = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
