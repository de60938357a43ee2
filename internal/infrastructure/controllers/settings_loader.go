package controllers

import (
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitpuller/internal/domain/entities"
)

// loadSettings overlays the config file and the global flags onto the shared
// settings. With required unset, a missing config file keeps the defaults.
func loadSettings(cmd *cobra.Command, settings *entities.Settings, required bool) error {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		found, err := entities.FindConfigFile()
		switch {
		case err == nil:
			cfgPath = found
		case required:
			return fmt.Errorf("no config file found: %w (specify one with --config or create gitpuller.yaml)", err)
		}
	}

	if cfgPath != "" {
		logger.Infof("Using config file: %s", cfgPath)
		loaded, err := entities.NewSettings(cfgPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		*settings = *loaded
	}

	if cmd.Flags().Changed("timeout") {
		timeout, _ := cmd.Flags().GetDuration("timeout")
		if timeout <= 0 {
			return fmt.Errorf("--timeout must be positive, got %s", timeout)
		}
		settings.CommandTimeout = timeout
	}

	return nil
}
