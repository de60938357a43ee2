//go:build unit

package git_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitpuller/internal/domain/entities"
	"github.com/rios0rios0/gitpuller/internal/domain/repositories"
	"github.com/rios0rios0/gitpuller/internal/infrastructure/repositories/git"
)

func initRepository(t *testing.T, withCommit, withOrigin bool) string {
	t.Helper()

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	if withCommit {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("hello\n"), 0o644))
		worktree, wtErr := repo.Worktree()
		require.NoError(t, wtErr)
		_, addErr := worktree.Add("README.md")
		require.NoError(t, addErr)
		_, commitErr := worktree.Commit("initial", &gogit.CommitOptions{
			Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
		})
		require.NoError(t, commitErr)
	}
	if withOrigin {
		_, remoteErr := repo.CreateRemote(&config.RemoteConfig{
			Name: "origin",
			URLs: []string{"https://example.com/r.git"},
		})
		require.NoError(t, remoteErr)
	}
	return dir
}

func TestWorkingCopyRepositoryInspect(t *testing.T) {
	t.Parallel()

	inspector := git.NewWorkingCopyRepository(afero.NewOsFs())

	t.Run("should report missing for an absent path", func(t *testing.T) {
		t.Parallel()

		// when
		state, err := inspector.Inspect(context.Background(), filepath.Join(t.TempDir(), "absent"))

		// then
		require.NoError(t, err)
		assert.Equal(t, repositories.WorkingCopyMissing, state)
	})

	t.Run("should report missing for an empty directory", func(t *testing.T) {
		t.Parallel()

		// when
		state, err := inspector.Inspect(context.Background(), t.TempDir())

		// then
		require.NoError(t, err)
		assert.Equal(t, repositories.WorkingCopyMissing, state)
	})

	t.Run("should report valid for a repository with a commit and an origin", func(t *testing.T) {
		t.Parallel()

		// given
		dir := initRepository(t, true, true)

		// when
		state, err := inspector.Inspect(context.Background(), dir)

		// then
		require.NoError(t, err)
		assert.Equal(t, repositories.WorkingCopyValid, state)
	})

	t.Run("should fail for a non-empty directory that is not a repository", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

		// when
		_, err := inspector.Inspect(context.Background(), dir)

		// then
		var stateErr *entities.RepositoryStateError
		require.ErrorAs(t, err, &stateErr)
		assert.Equal(t, dir, stateErr.Path)
	})

	t.Run("should fail for a regular file", func(t *testing.T) {
		t.Parallel()

		// given
		file := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

		// when
		_, err := inspector.Inspect(context.Background(), file)

		// then
		var stateErr *entities.RepositoryStateError
		require.ErrorAs(t, err, &stateErr)
	})

	t.Run("should fail for a repository without commits", func(t *testing.T) {
		t.Parallel()

		// given
		dir := initRepository(t, false, true)

		// when
		_, err := inspector.Inspect(context.Background(), dir)

		// then
		var stateErr *entities.RepositoryStateError
		require.ErrorAs(t, err, &stateErr)
		assert.Contains(t, stateErr.Reason, "HEAD")
	})

	t.Run("should fail for a repository without an origin remote", func(t *testing.T) {
		t.Parallel()

		// given
		dir := initRepository(t, true, false)

		// when
		_, err := inspector.Inspect(context.Background(), dir)

		// then
		var stateErr *entities.RepositoryStateError
		require.ErrorAs(t, err, &stateErr)
		assert.Contains(t, stateErr.Reason, "origin")
	})
}
