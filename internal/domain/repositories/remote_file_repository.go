package repositories

import (
	"context"
	"io"
)

// ProgressFunc receives the percentage of a download completed so far.
type ProgressFunc func(percent int)

// RemoteFileRepository retrieves a file by opaque identifier from a content provider.
type RemoteFileRepository interface {
	// Name returns the provider identifier (e.g. "s3", "http").
	Name() string

	// Fetch streams the file into w, reporting progress as it goes.
	Fetch(ctx context.Context, fileID string, w io.Writer, progress ProgressFunc) error
}
