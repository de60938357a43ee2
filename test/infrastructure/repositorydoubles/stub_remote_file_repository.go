//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"io"

	"github.com/rios0rios0/gitpuller/internal/domain/repositories"
)

// StubRemoteFileRepository implements repositories.RemoteFileRepository by
// writing Content in Steps equal parts, reporting progress after each.
type StubRemoteFileRepository struct {
	ProviderName string
	Content      []byte
	Steps        int
	// Err is returned after the content was written.
	Err error

	// spy
	FetchedIDs []string
	// spy: context error observed after the last progress report
	CtxErr error
}

var _ repositories.RemoteFileRepository = (*StubRemoteFileRepository)(nil)

func (s *StubRemoteFileRepository) Name() string {
	if s.ProviderName == "" {
		return "stub"
	}
	return s.ProviderName
}

func (s *StubRemoteFileRepository) Fetch(
	ctx context.Context,
	fileID string,
	w io.Writer,
	progress repositories.ProgressFunc,
) error {
	s.FetchedIDs = append(s.FetchedIDs, fileID)

	steps := max(s.Steps, 1)
	size := len(s.Content)
	for i := 1; i <= steps; i++ {
		if err := ctx.Err(); err != nil {
			s.CtxErr = err
			return err
		}
		from, to := size*(i-1)/steps, size*i/steps
		if _, err := w.Write(s.Content[from:to]); err != nil {
			return err
		}
		progress(i * 100 / steps)
	}
	s.CtxErr = ctx.Err()
	if s.CtxErr != nil {
		return s.CtxErr
	}
	return s.Err
}
