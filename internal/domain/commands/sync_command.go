package commands

import (
	"context"
	"errors"
	"fmt"
	"sync"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/gitpuller/internal/domain/entities"
)

// SyncObserver receives every event of every pull. It is called from several
// goroutines at once.
type SyncObserver func(spec entities.RepositorySpec, event entities.ProgressEvent)

// Sync is the interface for pulling many working copies.
type Sync interface {
	Execute(ctx context.Context, specs []entities.RepositorySpec, observer SyncObserver) error
}

// SyncCommand pulls independent working copies concurrently.
type SyncCommand struct {
	pull     Pull
	settings *entities.Settings
}

// NewSyncCommand creates a new SyncCommand.
func NewSyncCommand(pull Pull, settings *entities.Settings) *SyncCommand {
	return &SyncCommand{pull: pull, settings: settings}
}

// Execute pulls every spec, at most settings.Concurrency at a time. A failed pull
// does not stop the others; all failures are joined into the returned error.
func (it *SyncCommand) Execute(
	ctx context.Context,
	specs []entities.RepositorySpec,
	observer SyncObserver,
) error {
	seen := make(map[string]bool, len(specs))
	for _, spec := range specs {
		if seen[spec.LocalPath] {
			return fmt.Errorf("working copy %s is configured more than once", spec.LocalPath)
		}
		seen[spec.LocalPath] = true
	}

	var (
		group    errgroup.Group
		mu       sync.Mutex
		failures []error
	)
	if it.settings.Concurrency > 0 {
		group.SetLimit(it.settings.Concurrency)
	}

	for _, spec := range specs {
		group.Go(func() error {
			for event, err := range it.pull.Execute(ctx, spec) {
				if err != nil {
					logger.Debugf("[sync] %s failed: %v", spec.LocalPath, err)
					mu.Lock()
					failures = append(failures, fmt.Errorf("%s: %w", spec.LocalPath, err))
					mu.Unlock()
					return nil
				}
				if observer != nil {
					observer(spec, event)
				}
			}
			return nil
		})
	}
	_ = group.Wait()

	logger.Debugf("[sync] %d of %d working copies synced", len(specs)-len(failures), len(specs))
	return errors.Join(failures...)
}
