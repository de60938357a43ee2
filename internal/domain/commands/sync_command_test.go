//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitpuller/internal/domain/commands"
	"github.com/rios0rios0/gitpuller/internal/domain/entities"
	"github.com/rios0rios0/gitpuller/test/domain/commanddoubles"
	"github.com/rios0rios0/gitpuller/test/domain/entitybuilders"
)

func TestSyncCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should pull every working copy and report their events", func(t *testing.T) {
		t.Parallel()

		// given
		pull := &commanddoubles.StubPullCommand{
			Events: map[string][]entities.ProgressEvent{
				"/a": {entities.NewProgressEvent(entities.StepClone, "Repo /a initialized")},
				"/b": {entities.NewProgressEvent(entities.StepMerge, "Already up to date.")},
			},
		}
		cmd := commands.NewSyncCommand(pull, entities.DefaultSettings())
		specs := []entities.RepositorySpec{
			entitybuilders.NewRepositorySpecBuilder().WithLocalPath("/a").BuildSpec(),
			entitybuilders.NewRepositorySpecBuilder().WithLocalPath("/b").BuildSpec(),
		}

		var mu sync.Mutex
		seen := map[string][]string{}

		// when
		err := cmd.Execute(context.Background(), specs, func(spec entities.RepositorySpec, event entities.ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			seen[spec.LocalPath] = append(seen[spec.LocalPath], event.Message)
		})

		// then
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"/a", "/b"}, pull.PulledPaths)
		assert.Equal(t, []string{"Repo /a initialized"}, seen["/a"])
		assert.Equal(t, []string{"Already up to date."}, seen["/b"])
	})

	t.Run("should keep going after a failure and join every error", func(t *testing.T) {
		t.Parallel()

		// given
		boom := errors.New("boom")
		pull := &commanddoubles.StubPullCommand{
			Errs: map[string]error{"/a": boom},
		}
		settings := entities.DefaultSettings()
		settings.Concurrency = 1
		cmd := commands.NewSyncCommand(pull, settings)
		specs := []entities.RepositorySpec{
			entitybuilders.NewRepositorySpecBuilder().WithLocalPath("/a").BuildSpec(),
			entitybuilders.NewRepositorySpecBuilder().WithLocalPath("/b").BuildSpec(),
		}

		// when
		err := cmd.Execute(context.Background(), specs, nil)

		// then
		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "/a")
		assert.ElementsMatch(t, []string{"/a", "/b"}, pull.PulledPaths)
	})

	t.Run("should reject two specs sharing a working copy", func(t *testing.T) {
		t.Parallel()

		// given
		pull := &commanddoubles.StubPullCommand{}
		cmd := commands.NewSyncCommand(pull, entities.DefaultSettings())
		spec := entitybuilders.NewRepositorySpecBuilder().WithLocalPath("/a").BuildSpec()

		// when
		err := cmd.Execute(context.Background(), []entities.RepositorySpec{spec, spec}, nil)

		// then
		require.Error(t, err)
		assert.Empty(t, pull.PulledPaths)
	})
}
