package repositories

import (
	"context"
	"iter"
)

// CommandRunner invokes version-control subcommands in a working directory.
// A failed command surfaces as *entities.ProcessError.
type CommandRunner interface {
	// Stream runs a command and yields its progress lines as they appear.
	// A non-nil error is always the last element yielded.
	Stream(ctx context.Context, dir string, args ...string) iter.Seq2[string, error]

	// Output runs a read-only query and returns its standard output.
	Output(ctx context.Context, dir string, args ...string) (string, error)
}
