package entities

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrCommandTimeout is wrapped by ProcessError when a command exceeded its deadline.
var ErrCommandTimeout = errors.New("command timed out")

// ProcessError is returned when an invoked command exits non-zero or cannot run at all.
type ProcessError struct {
	Args     []string
	ExitCode int
	Output   string
	TimedOut bool
	Err      error
}

func (e *ProcessError) Error() string {
	msg := fmt.Sprintf("%q exited with code %d", strings.Join(e.Args, " "), e.ExitCode)
	if e.TimedOut {
		msg = fmt.Sprintf("%q timed out", strings.Join(e.Args, " "))
	}
	if output := strings.TrimSpace(e.Output); output != "" {
		msg += ": " + output
	}
	return msg
}

func (e *ProcessError) Unwrap() error {
	if e.TimedOut {
		return ErrCommandTimeout
	}
	return e.Err
}

// LockHeldError is returned when a recent lock sentinel blocks a mutating step.
// Callers may retry after a delay; the engine never retries on its own.
type LockHeldError struct {
	Lock LockHandle
	Age  time.Duration
}

func (e *LockHeldError) Error() string {
	return fmt.Sprintf(
		"recent lock %s found (age %s), operation can not proceed; try again in a few minutes",
		e.Lock.Path, e.Age.Round(time.Second),
	)
}

// IsRetryable is always true: the holder is expected to finish or go stale.
func (e *LockHeldError) IsRetryable() bool {
	return true
}

// RepositoryStateError is returned when a path that should hold a working copy does not.
type RepositoryStateError struct {
	Path   string
	Reason string
	Err    error
}

func (e *RepositoryStateError) Error() string {
	msg := fmt.Sprintf("invalid working copy at %q: %s", e.Path, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RepositoryStateError) Unwrap() error {
	return e.Err
}

// RemoteFetchError wraps any failure reported by a remote file provider.
type RemoteFetchError struct {
	Provider string
	FileID   string
	Err      error
}

func (e *RemoteFetchError) Error() string {
	return fmt.Sprintf("failed to fetch %q from %s: %v", e.FileID, e.Provider, e.Err)
}

func (e *RemoteFetchError) Unwrap() error {
	return e.Err
}

// SyncError reports the step that aborted a pull.
// ExitCode and Output are copied from an underlying ProcessError, if any.
type SyncError struct {
	Step     Step
	ExitCode int
	Output   string
	Err      error
}

// NewSyncError wraps err for the given step. A nil err yields nil, and an err that
// already is a SyncError is returned unchanged.
func NewSyncError(step Step, err error) error {
	if err == nil {
		return nil
	}

	var syncErr *SyncError
	if errors.As(err, &syncErr) {
		return err
	}

	result := &SyncError{Step: step, Err: err}
	var procErr *ProcessError
	if errors.As(err, &procErr) {
		result.ExitCode = procErr.ExitCode
		result.Output = procErr.Output
	}
	return result
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Step, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}
