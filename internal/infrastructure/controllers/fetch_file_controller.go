package controllers

import (
	"errors"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitpuller/internal/domain/commands"
	"github.com/rios0rios0/gitpuller/internal/domain/entities"
	"github.com/rios0rios0/gitpuller/internal/infrastructure/repositories"
)

// FetchFileController handles the "fetch-file" subcommand.
type FetchFileController struct {
	command  commands.FetchFile
	registry *repositories.RemoteFileRegistry
	settings *entities.Settings
}

// NewFetchFileController creates a new FetchFileController.
func NewFetchFileController(
	command commands.FetchFile,
	registry *repositories.RemoteFileRegistry,
	settings *entities.Settings,
) *FetchFileController {
	return &FetchFileController{command: command, registry: registry, settings: settings}
}

// GetBind returns the Cobra command metadata for the fetch-file controller.
func (it *FetchFileController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "fetch-file",
		Short: "Download a single file from a remote content provider",
		Long: `Download a file by identifier and save it to a local path,
reporting progress as it goes. The destination is only written once the
download completed.`,
	}
}

// Execute downloads the file described by the flags.
func (it *FetchFileController) Execute(cmd *cobra.Command, _ []string) error {
	if err := loadSettings(cmd, it.settings, false); err != nil {
		return err
	}

	provider, _ := cmd.Flags().GetString("provider")
	fileID, _ := cmd.Flags().GetString("id")
	out, _ := cmd.Flags().GetString("out")
	if fileID == "" || out == "" {
		return errors.New("--id and --out are required")
	}

	for event, err := range it.command.Execute(cmd.Context(), commands.FetchFileOptions{
		Provider:    provider,
		FileID:      fileID,
		Destination: out,
	}) {
		if err != nil {
			return err
		}
		logger.Info(event.Message)
	}
	return nil
}

// AddFlags adds the fetch-file flags to the given Cobra command.
func (it *FetchFileController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("provider", "http",
		"Remote content provider ("+strings.Join(it.registry.Names(), ", ")+")")
	cmd.Flags().String("id", "", "Identifier of the file (URL, path or bucket/key)")
	cmd.Flags().String("out", "", "Local destination path")
}
