package controllers

import (
	"errors"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitpuller/internal/domain/commands"
	"github.com/rios0rios0/gitpuller/internal/domain/entities"
)

// SyncController handles the "sync" subcommand (batch mode).
type SyncController struct {
	command  commands.Sync
	settings *entities.Settings
}

// NewSyncController creates a new SyncController.
func NewSyncController(command commands.Sync, settings *entities.Settings) *SyncController {
	return &SyncController{command: command, settings: settings}
}

// GetBind returns the Cobra command metadata for the sync controller.
func (it *SyncController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "sync",
		Short: "Pull every working copy listed in the config file",
		Long: `Read the configuration file and pull every listed working copy.

This is the command intended to be used in a cronjob. Working copies are
pulled concurrently; a failure in one does not stop the others.`,
	}
}

// Execute runs the batch sync.
func (it *SyncController) Execute(cmd *cobra.Command, _ []string) error {
	if err := loadSettings(cmd, it.settings, true); err != nil {
		return err
	}
	if cmd.Flags().Changed("concurrency") {
		it.settings.Concurrency, _ = cmd.Flags().GetInt("concurrency")
	}

	specs, err := it.settings.Specs()
	if err != nil {
		return err
	}
	if len(specs) == 0 {
		return errors.New("no repositories configured")
	}

	logger.Infof("Syncing %d working copies...", len(specs))
	return it.command.Execute(cmd.Context(), specs, func(spec entities.RepositorySpec, event entities.ProgressEvent) {
		logger.WithFields(logger.Fields{
			"path": spec.LocalPath,
			"step": event.Step,
		}).Info(event.Message)
	})
}

// AddFlags adds the sync-specific flags to the given Cobra command.
func (it *SyncController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Int("concurrency", entities.DefaultConcurrency, "How many working copies to pull at once")
}
