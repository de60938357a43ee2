//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/gitpuller/internal/domain/repositories"
)

// StubWorkingCopyRepository implements repositories.WorkingCopyRepository.
type StubWorkingCopyRepository struct {
	State repositories.WorkingCopyState
	Err   error

	// spy
	InspectedPaths []string
}

var _ repositories.WorkingCopyRepository = (*StubWorkingCopyRepository)(nil)

func (s *StubWorkingCopyRepository) Inspect(_ context.Context, path string) (repositories.WorkingCopyState, error) {
	s.InspectedPaths = append(s.InspectedPaths, path)
	return s.State, s.Err
}

// StubVersionChecker implements repositories.ToolVersionChecker.
type StubVersionChecker struct {
	Version string
	Err     error
}

var _ repositories.ToolVersionChecker = (*StubVersionChecker)(nil)

func (s *StubVersionChecker) Check(_ context.Context) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	if s.Version == "" {
		return "v2.43.0", nil
	}
	return s.Version, nil
}
