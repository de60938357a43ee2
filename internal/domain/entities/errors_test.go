//go:build unit

package entities_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitpuller/internal/domain/entities"
)

func TestNewSyncError(t *testing.T) {
	t.Parallel()

	t.Run("should return nil for a nil error", func(t *testing.T) {
		t.Parallel()

		// when
		err := entities.NewSyncError(entities.StepFetch, nil)

		// then
		assert.NoError(t, err)
	})

	t.Run("should copy exit code and output from a process error", func(t *testing.T) {
		t.Parallel()

		// given
		procErr := &entities.ProcessError{Args: []string{"fetch"}, ExitCode: 128, Output: "fatal"}

		// when
		err := entities.NewSyncError(entities.StepFetch, fmt.Errorf("wrapped: %w", procErr))

		// then
		var syncErr *entities.SyncError
		require.ErrorAs(t, err, &syncErr)
		assert.Equal(t, entities.StepFetch, syncErr.Step)
		assert.Equal(t, 128, syncErr.ExitCode)
		assert.Equal(t, "fatal", syncErr.Output)
		assert.ErrorIs(t, err, procErr)
	})

	t.Run("should keep the innermost step when wrapped twice", func(t *testing.T) {
		t.Parallel()

		// given
		inner := entities.NewSyncError(entities.StepCommit, errors.New("boom"))

		// when
		err := entities.NewSyncError(entities.StepMerge, inner)

		// then
		var syncErr *entities.SyncError
		require.ErrorAs(t, err, &syncErr)
		assert.Equal(t, entities.StepCommit, syncErr.Step)
	})
}

func TestProcessError(t *testing.T) {
	t.Parallel()

	t.Run("should unwrap to the timeout sentinel when timed out", func(t *testing.T) {
		t.Parallel()

		// given
		err := &entities.ProcessError{Args: []string{"fetch"}, ExitCode: -1, TimedOut: true}

		// when
		message := err.Error()

		// then
		require.ErrorIs(t, err, entities.ErrCommandTimeout)
		assert.Contains(t, message, "timed out")
	})

	t.Run("should include the trimmed output in the message", func(t *testing.T) {
		t.Parallel()

		// given
		err := &entities.ProcessError{Args: []string{"merge", "origin/main"}, ExitCode: 1, Output: "CONFLICT\n"}

		// when
		message := err.Error()

		// then
		assert.Equal(t, `"merge origin/main" exited with code 1: CONFLICT`, message)
	})
}
