package repositories

import "context"

// WorkingCopyState classifies what is found at a local path.
type WorkingCopyState int

const (
	// WorkingCopyMissing means the path is absent or an empty directory.
	WorkingCopyMissing WorkingCopyState = iota
	// WorkingCopyValid means the path holds a usable working copy.
	WorkingCopyValid
)

// WorkingCopyRepository decides whether a path already holds a working copy.
type WorkingCopyRepository interface {
	// Inspect returns *entities.RepositoryStateError when the path exists but
	// holds something other than a usable working copy.
	Inspect(ctx context.Context, path string) (WorkingCopyState, error)
}

// ToolVersionChecker verifies the installed version-control tool is recent enough.
type ToolVersionChecker interface {
	Check(ctx context.Context) (string, error)
}
