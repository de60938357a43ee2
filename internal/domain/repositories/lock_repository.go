package repositories

import (
	"iter"

	"github.com/rios0rios0/gitpuller/internal/domain/entities"
)

// LockRepository guards a working copy against concurrent mutating commands.
type LockRepository interface {
	// Ensure confirms the lock is free or takes over a stale one. It must be
	// consumed immediately before every mutating command. A recent lock ends the
	// sequence with *entities.LockHeldError.
	Ensure(workDir string) iter.Seq2[entities.ProgressEvent, error]

	// Handle returns the sentinel location for the working copy.
	Handle(workDir string) entities.LockHandle
}
