//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/gitpuller/internal/domain/entities"
	"github.com/rios0rios0/gitpuller/internal/domain/repositories"
)

// StubChangeScanner implements repositories.ChangeScanner with fixed answers.
type StubChangeScanner struct {
	Dirty       bool
	Added       []string
	AddedErr    error
	Deleted     []string
	DeletedErr  error
	Unmerged    []string
	UnmergedErr error
	// Upstream lists the paths that exist on the upstream branch.
	Upstream map[string]bool
}

var _ repositories.ChangeScanner = (*StubChangeScanner)(nil)

func (s *StubChangeScanner) IsDirty(_ context.Context, _ string) bool { return s.Dirty }

func (s *StubChangeScanner) FindUpstreamChanged(_ context.Context, _, _, kind string) ([]string, error) {
	if kind != repositories.ChangeAdded {
		return nil, nil
	}
	return s.Added, s.AddedErr
}

func (s *StubChangeScanner) FindDeletedFiles(_ context.Context, _ string) ([]string, error) {
	return s.Deleted, s.DeletedErr
}

func (s *StubChangeScanner) FindUnmergedFiles(_ context.Context, _ string) ([]string, error) {
	return s.Unmerged, s.UnmergedErr
}

func (s *StubChangeScanner) ExistsUpstream(_ context.Context, _, _, path string) bool {
	return s.Upstream[path]
}

func (s *StubChangeScanner) Scan(_ context.Context, _, _ string) (entities.ChangeSet, error) {
	if s.AddedErr != nil {
		return entities.ChangeSet{}, s.AddedErr
	}
	if s.DeletedErr != nil {
		return entities.ChangeSet{}, s.DeletedErr
	}

	var stillUpstream []string
	for _, path := range s.Deleted {
		if s.Upstream[path] {
			stillUpstream = append(stillUpstream, path)
		}
	}
	return entities.ChangeSet{
		Dirty:              s.Dirty,
		DeletedFiles:       stillUpstream,
		AddedUpstreamFiles: s.Added,
	}, nil
}
