package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gobbcode/internal/configloader"
	"github.com/yaklabco/gobbcode/internal/logging"
	"github.com/yaklabco/gobbcode/pkg/config"
)

// loadConfig resolves the configuration for a command, layering cliCfg over
// the discovered files and the environment. It also returns the working
// directory config discovery started from.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, string, error) {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	if cmd.Flags().Changed("color") {
		color, err := cmd.Flags().GetString("color")
		if err != nil {
			return nil, "", fmt.Errorf("get color flag: %w", err)
		}
		mode := config.ColorMode(color)
		if !mode.IsValid() {
			return nil, "", fmt.Errorf("%w: color must be auto, always or never, got %q", ErrInvalidUsage, color)
		}
		cliCfg.Output.Color = mode
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	return loadResult.Config, workDir, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
