package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/wrapped/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes a config file from the bundled template.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err == nil {
		r.logger.Info("config file already exists", "path", configPath)
		if _, err := shared.LoadConfig(configPath); err != nil {
			return err
		}
		return r.writePlain("✓ %s is valid\n", configPath)
	}

	r.logger.Info("config file not found, creating from template", "path", configPath)
	if err := shared.CreateConfigFile(configPath); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	if err := r.writePlain("✓ Config written to %s\n", configPath); err != nil {
		return err
	}
	return r.writePlain("Set GEMINI_API_KEY in your environment or a .env file, then run 'wrapped'.\n")
}
