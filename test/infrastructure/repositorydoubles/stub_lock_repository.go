//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"iter"
	"path/filepath"

	"github.com/rios0rios0/gitpuller/internal/domain/entities"
	"github.com/rios0rios0/gitpuller/internal/domain/repositories"
)

// LockJournalEntry is what StubLockRepository records in its journal.
const LockJournalEntry = "<lock>"

// StubLockRepository implements repositories.LockRepository.
type StubLockRepository struct {
	// Events are yielded by every Ensure before Err.
	Events []entities.ProgressEvent
	Err    error
	// Journal, when set, receives LockJournalEntry on every consumed Ensure.
	Journal *StubCommandRunner

	// spy
	EnsureCount int
}

var _ repositories.LockRepository = (*StubLockRepository)(nil)

func (s *StubLockRepository) Ensure(_ string) iter.Seq2[entities.ProgressEvent, error] {
	return func(yield func(entities.ProgressEvent, error) bool) {
		s.EnsureCount++
		if s.Journal != nil {
			s.Journal.Record(LockJournalEntry)
		}
		for _, event := range s.Events {
			if !yield(event, nil) {
				return
			}
		}
		if s.Err != nil {
			yield(entities.ProgressEvent{}, s.Err)
		}
	}
}

func (s *StubLockRepository) Handle(workDir string) entities.LockHandle {
	return entities.LockHandle{Path: filepath.Join(workDir, ".git", "index.lock")}
}
