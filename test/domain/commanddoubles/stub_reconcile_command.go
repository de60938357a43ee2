//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/gitpuller/internal/domain/commands"
	"github.com/rios0rios0/gitpuller/internal/domain/entities"
)

// StubReconcileCommand is a stub implementation of commands.Reconcile.
type StubReconcileCommand struct {
	Events []entities.ProgressEvent
	Err    error

	ExecuteCallCount int
	LastSpec         entities.RepositorySpec
}

var _ commands.Reconcile = (*StubReconcileCommand)(nil)

func (s *StubReconcileCommand) Execute(_ context.Context, spec entities.RepositorySpec) commands.Events {
	return func(yield func(entities.ProgressEvent, error) bool) {
		s.ExecuteCallCount++
		s.LastSpec = spec
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
