//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/gitpuller/internal/domain/commands"
	"github.com/rios0rios0/gitpuller/internal/domain/entities"
)

// StubSyncCommand is a stub implementation of commands.Sync.
type StubSyncCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	LastSpecs        []entities.RepositorySpec
}

var _ commands.Sync = (*StubSyncCommand)(nil)

func (s *StubSyncCommand) Execute(
	_ context.Context,
	specs []entities.RepositorySpec,
	_ commands.SyncObserver,
) error {
	s.ExecuteCallCount++
	s.LastSpecs = specs
	return s.ExecuteErr
}
