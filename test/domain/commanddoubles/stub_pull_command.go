//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/gitpuller/internal/domain/commands"
	"github.com/rios0rios0/gitpuller/internal/domain/entities"
)

// StubPullCommand is a stub implementation of commands.Pull, safe for
// concurrent use. Results are keyed by the spec's local path.
type StubPullCommand struct {
	mu sync.Mutex

	Events map[string][]entities.ProgressEvent
	Errs   map[string]error

	// spy
	PulledPaths []string
}

var _ commands.Pull = (*StubPullCommand)(nil)

func (s *StubPullCommand) Execute(_ context.Context, spec entities.RepositorySpec) commands.Events {
	return func(yield func(entities.ProgressEvent, error) bool) {
		s.mu.Lock()
		s.PulledPaths = append(s.PulledPaths, spec.LocalPath)
		events := s.Events[spec.LocalPath]
		err := s.Errs[spec.LocalPath]
		s.mu.Unlock()

		for _, event := range events {
			if !yield(event, nil) {
				return
			}
		}
		if err != nil {
			yield(entities.ProgressEvent{}, err)
		}
	}
}
