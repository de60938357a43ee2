package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/rios0rios0/gitpuller/internal/domain/entities"
	"github.com/rios0rios0/gitpuller/internal/domain/repositories"
)

const (
	autoCommitMessage = "Automatic commit by gitpuller"
	renameTimeFormat  = "20060102150405"
)

// Reconcile is the interface for updating an existing working copy.
type Reconcile interface {
	Execute(ctx context.Context, spec entities.RepositorySpec) Events
}

// ReconcileCommand brings an existing working copy up to date with its upstream
// branch while keeping local edits: fetch, rename colliding untracked files,
// restore deleted files, commit local changes, then merge favouring upstream.
type ReconcileCommand struct {
	runner   repositories.CommandRunner
	scanner  repositories.ChangeScanner
	lock     repositories.LockRepository
	fs       afero.Fs
	clock    clockwork.Clock
	settings *entities.Settings
}

// NewReconcileCommand creates a new ReconcileCommand.
func NewReconcileCommand(
	runner repositories.CommandRunner,
	scanner repositories.ChangeScanner,
	lock repositories.LockRepository,
	fs afero.Fs,
	clock clockwork.Clock,
	settings *entities.Settings,
) *ReconcileCommand {
	return &ReconcileCommand{
		runner:   runner,
		scanner:  scanner,
		lock:     lock,
		fs:       fs,
		clock:    clock,
		settings: settings,
	}
}

// Execute returns the update cycle as a lazy event stream. Nothing runs until the
// stream is consumed; the first failing step ends it with a *entities.SyncError.
// Steps already performed are not rolled back.
func (it *ReconcileCommand) Execute(ctx context.Context, spec entities.RepositorySpec) Events {
	return func(yield func(entities.ProgressEvent, error) bool) {
		logger.Debugf("[reconcile] Updating %s from %s", spec.LocalPath, spec.UpstreamRef())

		var changes entities.ChangeSet
		steps := []struct {
			step entities.Step
			run  func() Events
		}{
			{entities.StepFetch, func() Events { return it.fetchRemotes(ctx, spec) }},
			{entities.StepScan, func() Events { return it.scanChanges(ctx, spec, &changes) }},
			{entities.StepRename, func() Events { return it.renameLocalUntracked(changes.AddedUpstreamFiles) }},
			{entities.StepRestore, func() Events { return it.restoreDeletedFiles(ctx, spec, changes.DeletedFiles) }},
			{entities.StepCommit, func() Events { return it.commitIfDirty(ctx, spec, it.settings.Identity) }},
			{entities.StepMerge, func() Events { return it.mergeUpstream(ctx, spec, it.settings.Identity) }},
		}

		for _, s := range steps {
			if !forward(s.run(), s.step, yield) {
				return
			}
		}

		logger.Debugf("[reconcile] %s is up to date with %s", spec.LocalPath, spec.UpstreamRef())
	}
}

// fetchRemotes updates remote-tracking refs. It does not touch the working tree,
// so no lock is required.
func (it *ReconcileCommand) fetchRemotes(ctx context.Context, spec entities.RepositorySpec) Events {
	return lines(it.runner.Stream(ctx, spec.LocalPath, "fetch"), entities.StepFetch)
}

// scanChanges compares the freshly fetched upstream with the working copy and
// stores the result in changes for the steps that follow.
func (it *ReconcileCommand) scanChanges(
	ctx context.Context,
	spec entities.RepositorySpec,
	changes *entities.ChangeSet,
) Events {
	return func(yield func(entities.ProgressEvent, error) bool) {
		scanned, err := it.scanner.Scan(ctx, spec.LocalPath, spec.BranchName)
		if err != nil {
			yield(entities.ProgressEvent{}, err)
			return
		}
		*changes = scanned

		if scanned.IsEmpty() {
			logger.Debugf("[reconcile] %s has nothing to reconcile before merging", spec.LocalPath)
			return
		}
		logger.Debugf("[reconcile] %s: %d added upstream, %d deleted locally",
			spec.LocalPath, len(scanned.AddedUpstreamFiles), len(scanned.DeletedFiles))
	}
}

// renameLocalUntracked moves local files out of the way of files newly added upstream.
func (it *ReconcileCommand) renameLocalUntracked(added []string) Events {
	return func(yield func(entities.ProgressEvent, error) bool) {
		for _, path := range added {
			if _, statErr := it.fs.Stat(path); statErr != nil {
				continue
			}

			renamed := TimestampedName(path, it.clock.Now())
			if renameErr := it.fs.Rename(path, renamed); renameErr != nil {
				yield(entities.ProgressEvent{}, fmt.Errorf("failed to rename %s: %w", path, renameErr))
				return
			}

			message := fmt.Sprintf("Renamed %s to %s to avoid conflict with upstream", path, renamed)
			if !yield(entities.NewProgressEvent(entities.StepRename, message), nil) {
				return
			}
		}
	}
}

// restoreDeletedFiles checks out, one at a time, every tracked file the user
// deleted that still exists upstream.
func (it *ReconcileCommand) restoreDeletedFiles(
	ctx context.Context,
	spec entities.RepositorySpec,
	deleted []string,
) Events {
	return func(yield func(entities.ProgressEvent, error) bool) {
		for _, file := range deleted {
			if !it.passThrough(it.lock.Ensure(spec.LocalPath), yield) {
				return
			}
			checkout := it.runner.Stream(ctx, spec.LocalPath, "checkout", spec.UpstreamRef(), "--", file)
			if !it.passThrough(lines(checkout, entities.StepRestore), yield) {
				return
			}

			message := fmt.Sprintf("Restored %s from %s", file, spec.UpstreamRef())
			if !yield(entities.NewProgressEvent(entities.StepRestore, message), nil) {
				return
			}
		}
	}
}

// commitIfDirty records local changes so the merge has something to merge into.
// Empty commits are allowed: some filesystems report a dirty tree with no diff.
func (it *ReconcileCommand) commitIfDirty(
	ctx context.Context,
	spec entities.RepositorySpec,
	identity entities.CommitIdentity,
) Events {
	return func(yield func(entities.ProgressEvent, error) bool) {
		if !it.scanner.IsDirty(ctx, spec.LocalPath) {
			logger.Debugf("[reconcile] %s has no local changes", spec.LocalPath)
			return
		}

		if !it.passThrough(it.lock.Ensure(spec.LocalPath), yield) {
			return
		}

		args := append(identity.ConfigArgs(), "commit", "-am", autoCommitMessage, "--allow-empty")
		it.passThrough(lines(it.runner.Stream(ctx, spec.LocalPath, args...), entities.StepCommit), yield)
	}
}

// mergeUpstream merges the upstream branch, taking upstream's side of every
// conflicting hunk. Conflicts the strategy option cannot settle (modify/delete)
// are resolved to upstream's state and the merge is concluded.
func (it *ReconcileCommand) mergeUpstream(
	ctx context.Context,
	spec entities.RepositorySpec,
	identity entities.CommitIdentity,
) Events {
	return func(yield func(entities.ProgressEvent, error) bool) {
		if !it.passThrough(it.lock.Ensure(spec.LocalPath), yield) {
			return
		}

		args := append(identity.ConfigArgs(), "merge", "-Xtheirs", spec.UpstreamRef())
		var mergeErr error
		for line, err := range it.runner.Stream(ctx, spec.LocalPath, args...) {
			if err != nil {
				mergeErr = err
				break
			}
			if !yield(entities.NewProgressEvent(entities.StepMerge, line), nil) {
				return
			}
		}
		if mergeErr == nil {
			return
		}

		var procErr *entities.ProcessError
		if !errors.As(mergeErr, &procErr) || procErr.TimedOut {
			yield(entities.ProgressEvent{}, mergeErr)
			return
		}

		unmerged, err := it.scanner.FindUnmergedFiles(ctx, spec.LocalPath)
		if err != nil || len(unmerged) == 0 {
			yield(entities.ProgressEvent{}, mergeErr)
			return
		}
		it.passThrough(it.resolveUnmerged(ctx, spec, identity, unmerged), yield)
	}
}

func (it *ReconcileCommand) resolveUnmerged(
	ctx context.Context,
	spec entities.RepositorySpec,
	identity entities.CommitIdentity,
	unmerged []string,
) Events {
	return func(yield func(entities.ProgressEvent, error) bool) {
		for _, file := range unmerged {
			if !it.passThrough(it.lock.Ensure(spec.LocalPath), yield) {
				return
			}

			var resolution [][]string
			if it.scanner.ExistsUpstream(ctx, spec.LocalPath, spec.BranchName, file) {
				resolution = [][]string{
					{"checkout", "--theirs", "--", file},
					{"add", "--", file},
				}
			} else {
				resolution = [][]string{{"rm", "--force", "--quiet", "--", file}}
			}

			for _, args := range resolution {
				if !it.passThrough(lines(it.runner.Stream(ctx, spec.LocalPath, args...), entities.StepMerge), yield) {
					return
				}
			}
		}

		if !it.passThrough(it.lock.Ensure(spec.LocalPath), yield) {
			return
		}
		args := append(identity.ConfigArgs(), "commit", "--no-edit")
		if !it.passThrough(lines(it.runner.Stream(ctx, spec.LocalPath, args...), entities.StepMerge), yield) {
			return
		}

		message := fmt.Sprintf("Resolved %d unmerged path(s) in favour of %s", len(unmerged), spec.UpstreamRef())
		yield(entities.NewProgressEvent(entities.StepMerge, message), nil)
	}
}

// passThrough re-yields events and errors unchanged, leaving step attribution to
// the caller. It returns false when the consumer stopped or seq failed.
func (it *ReconcileCommand) passThrough(seq Events, yield func(entities.ProgressEvent, error) bool) bool {
	for event, err := range seq {
		if err != nil {
			yield(entities.ProgressEvent{}, err)
			return false
		}
		if !yield(event, nil) {
			return false
		}
	}
	return true
}

// TimestampedName inserts a `__YYYYMMDDHHMMSS` suffix before the extension of
// path's last element, or at its end when there is no extension.
func TimestampedName(path string, now time.Time) string {
	dir, base := filepath.Split(path)
	stem, ext := splitExt(base)
	return dir + stem + "__" + now.Format(renameTimeFormat) + ext
}

// splitExt splits a file name at its last dot. Leading dots do not start an
// extension, so ".bashrc" has none.
func splitExt(name string) (string, string) {
	trimmed := strings.TrimLeft(name, ".")
	idx := strings.LastIndex(trimmed, ".")
	if idx < 0 {
		return name, ""
	}
	idx += len(name) - len(trimmed)
	return name[:idx], name[idx:]
}
