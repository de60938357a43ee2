package commands

import (
	"context"
	"fmt"
	"strconv"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitpuller/internal/domain/entities"
	"github.com/rios0rios0/gitpuller/internal/domain/repositories"
)

// Pull is the interface for the pull command: clone when missing, update otherwise.
type Pull interface {
	Execute(ctx context.Context, spec entities.RepositorySpec) Events
}

// PullCommand decides between cloning a fresh working copy and reconciling an
// existing one.
type PullCommand struct {
	runner        repositories.CommandRunner
	workingCopies repositories.WorkingCopyRepository
	versions      repositories.ToolVersionChecker
	reconcile     Reconcile
}

// NewPullCommand creates a new PullCommand.
func NewPullCommand(
	runner repositories.CommandRunner,
	workingCopies repositories.WorkingCopyRepository,
	versions repositories.ToolVersionChecker,
	reconcile Reconcile,
) *PullCommand {
	return &PullCommand{
		runner:        runner,
		workingCopies: workingCopies,
		versions:      versions,
		reconcile:     reconcile,
	}
}

// Execute returns the pull as a lazy event stream.
func (it *PullCommand) Execute(ctx context.Context, spec entities.RepositorySpec) Events {
	return func(yield func(entities.ProgressEvent, error) bool) {
		if err := spec.Validate(); err != nil {
			yield(entities.ProgressEvent{}, entities.NewSyncError(entities.StepInspect, err))
			return
		}

		version, err := it.versions.Check(ctx)
		if err != nil {
			yield(entities.ProgressEvent{}, entities.NewSyncError(entities.StepPreflight, err))
			return
		}
		logger.Debugf("[pull] Using git %s", version)

		state, err := it.workingCopies.Inspect(ctx, spec.LocalPath)
		if err != nil {
			yield(entities.ProgressEvent{}, entities.NewSyncError(entities.StepInspect, err))
			return
		}

		if state == repositories.WorkingCopyMissing {
			forward(it.Initialize(ctx, spec), entities.StepClone, yield)
			return
		}
		forward(it.reconcile.Execute(ctx, spec), entities.StepMerge, yield)
	}
}

// Initialize clones the upstream branch into the local path, bounded to
// spec.CloneDepth commits when it is positive.
func (it *PullCommand) Initialize(ctx context.Context, spec entities.RepositorySpec) Events {
	return func(yield func(entities.ProgressEvent, error) bool) {
		logger.Debugf("[pull] Cloning %s into %s", spec.RemoteURL, spec.LocalPath)
		start := fmt.Sprintf("Cloning %s (%s) into %s", spec.RemoteURL, spec.BranchName, spec.LocalPath)
		if !yield(entities.NewProgressEvent(entities.StepClone, start), nil) {
			return
		}

		if !forward(lines(it.runner.Stream(ctx, "", cloneArgs(spec)...), entities.StepClone), entities.StepClone, yield) {
			return
		}

		logger.Debugf("[pull] Clone of %s finished", spec.LocalPath)
		yield(entities.NewProgressEvent(entities.StepClone, fmt.Sprintf("Repo %s initialized", spec.LocalPath)), nil)
	}
}

func cloneArgs(spec entities.RepositorySpec) []string {
	args := []string{"clone"}
	if spec.CloneDepth > 0 {
		args = append(args, "--depth", strconv.Itoa(spec.CloneDepth))
	}
	return append(args, "--branch", spec.BranchName, spec.RemoteURL, spec.LocalPath)
}
