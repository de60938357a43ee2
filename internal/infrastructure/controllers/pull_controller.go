package controllers

import (
	"errors"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitpuller/internal/domain/commands"
	"github.com/rios0rios0/gitpuller/internal/domain/entities"
)

// PullController handles the "pull" subcommand (a single working copy).
type PullController struct {
	command  commands.Pull
	settings *entities.Settings
}

// NewPullController creates a new PullController.
func NewPullController(command commands.Pull, settings *entities.Settings) *PullController {
	return &PullController{command: command, settings: settings}
}

// GetBind returns the Cobra command metadata for the pull controller.
func (it *PullController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "pull",
		Short: "Clone or update one working copy",
		Long: `Clone the upstream branch into the local path when it holds no repository,
otherwise bring the working copy up to date with upstream.

Local edits are committed and merged. Upstream wins every conflict, untracked
files that collide with new upstream files are renamed, and tracked files the
user deleted are restored.`,
	}
}

// Execute pulls the working copy described by the flags.
func (it *PullController) Execute(cmd *cobra.Command, _ []string) error {
	if err := loadSettings(cmd, it.settings, false); err != nil {
		return err
	}

	remoteURL, _ := cmd.Flags().GetString("repo")
	branch, _ := cmd.Flags().GetString("branch")
	path, _ := cmd.Flags().GetString("path")
	if remoteURL == "" || path == "" {
		return errors.New("--repo and --path are required")
	}

	spec, err := entities.NewRepositorySpec(remoteURL, branch, path)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("depth") {
		depth, _ := cmd.Flags().GetInt("depth")
		spec = spec.WithDepth(depth)
	}

	for event, pullErr := range it.command.Execute(cmd.Context(), spec) {
		if pullErr != nil {
			return pullErr
		}
		logger.Info(event.Message)
	}
	return nil
}

// AddFlags adds the pull-specific flags to the given Cobra command.
func (it *PullController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("repo", "", "Remote URL of the upstream repository")
	cmd.Flags().String("branch", "main", "Upstream branch to follow")
	cmd.Flags().String("path", "", "Local path of the working copy")
	cmd.Flags().Int("depth", entities.DefaultCloneDepth,
		"History depth for a fresh clone, 0 for full history (default from "+entities.DepthEnvVar+")")
}
