package lock

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/rios0rios0/gitpuller/internal/domain/entities"
)

// StaleAfter is the age past which a lock sentinel is considered abandoned.
const StaleAfter = 600 * time.Second

// IndexLockRepository treats git's own index.lock as the sentinel: git creates
// it while a mutating command runs and removes it when done. The check-then-delete
// is not atomic.
type IndexLockRepository struct {
	fs         afero.Fs
	clock      clockwork.Clock
	staleAfter time.Duration
}

// NewIndexLockRepository creates an IndexLockRepository with the default staleness threshold.
func NewIndexLockRepository(fs afero.Fs, clock clockwork.Clock) *IndexLockRepository {
	return &IndexLockRepository{fs: fs, clock: clock, staleAfter: StaleAfter}
}

// Handle returns the sentinel location inside the working copy's git directory.
func (it *IndexLockRepository) Handle(workDir string) entities.LockHandle {
	return entities.LockHandle{Path: filepath.Join(workDir, ".git", "index.lock")}
}

// Ensure yields nothing when no sentinel exists, takes over a sentinel older
// than the threshold, and fails with *entities.LockHeldError otherwise. An age
// exactly at the threshold is still considered held.
func (it *IndexLockRepository) Ensure(workDir string) iter.Seq2[entities.ProgressEvent, error] {
	return func(yield func(entities.ProgressEvent, error) bool) {
		handle := it.Handle(workDir)

		info, err := it.fs.Stat(handle.Path)
		if err != nil {
			if os.IsNotExist(err) {
				return
			}
			yield(entities.ProgressEvent{}, fmt.Errorf("failed to inspect %s: %w", handle.Path, err))
			return
		}

		age := it.clock.Since(info.ModTime())
		if age <= it.staleAfter {
			yield(entities.ProgressEvent{}, &entities.LockHeldError{Lock: handle, Age: age})
			return
		}

		message := fmt.Sprintf("Stale %s found, attempting to remove", handle.Path)
		if !yield(entities.NewProgressEvent(entities.StepLock, message), nil) {
			return
		}

		if removeErr := it.fs.Remove(handle.Path); removeErr != nil && !os.IsNotExist(removeErr) {
			yield(entities.ProgressEvent{}, fmt.Errorf("failed to remove stale %s: %w", handle.Path, removeErr))
			return
		}
		handle.AcquiredAt = it.clock.Now()
		logger.Debugf("[lock] Took over %s at %s", handle.Path, handle.AcquiredAt.Format(time.RFC3339))

		yield(entities.NewProgressEvent(entities.StepLock, fmt.Sprintf("Stale %s removed", handle.Path)), nil)
	}
}
