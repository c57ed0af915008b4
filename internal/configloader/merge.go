package configloader

import (
	"maps"

	"github.com/yaklabco/gobbcode/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Maps: keys are merged, override's entries win
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.QuoteBackground != "" {
		result.QuoteBackground = override.QuoteBackground
	}
	if override.Output.Format != "" {
		result.Output.Format = override.Output.Format
	}
	if override.Output.Color != "" {
		result.Output.Color = override.Output.Color
	}
	if override.Output.MaxTextWidth != 0 {
		result.Output.MaxTextWidth = override.Output.MaxTextWidth
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.From != "" {
		result.From = override.From
	}
	if override.OutputDir != "" {
		result.OutputDir = override.OutputDir
	}

	result.Commands = mergeCommands(base.Commands, override.Commands)

	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.Elements != nil {
		result.Elements = override.Elements
	}

	return &result
}

// mergeCommands merges command registrations by URI.
func mergeCommands(base, override map[string]config.CommandConfig) map[string]config.CommandConfig {
	if base == nil && override == nil {
		return nil
	}
	result := make(map[string]config.CommandConfig, len(base)+len(override))
	maps.Copy(result, base)
	maps.Copy(result, override)
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
