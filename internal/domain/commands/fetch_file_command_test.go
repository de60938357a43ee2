//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitpuller/internal/domain/commands"
	"github.com/rios0rios0/gitpuller/internal/domain/entities"
	"github.com/rios0rios0/gitpuller/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/gitpuller/internal/infrastructure/repositories"
	doubles "github.com/rios0rios0/gitpuller/test/infrastructure/repositorydoubles"
)

func newFetchFileCommand(provider *doubles.StubRemoteFileRepository, fs afero.Fs) *commands.FetchFileCommand {
	registry := infraRepos.NewRemoteFileRegistry()
	registry.Register("stub", func(_ context.Context) (repositories.RemoteFileRepository, error) {
		return provider, nil
	})
	return commands.NewFetchFileCommand(registry, fs)
}

func TestFetchFileCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should report progress and save the file", func(t *testing.T) {
		t.Parallel()

		// given
		fs := afero.NewMemMapFs()
		provider := &doubles.StubRemoteFileRepository{Content: []byte("0123456789"), Steps: 4}
		cmd := newFetchFileCommand(provider, fs)

		// when
		events, err := commands.Collect(cmd.Execute(context.Background(), commands.FetchFileOptions{
			Provider: "stub", FileID: "doc-1", Destination: "/out/doc.txt",
		}))

		// then
		require.NoError(t, err)
		messages := make([]string, 0, len(events))
		for _, event := range events {
			messages = append(messages, event.Message)
		}
		assert.Equal(t, []string{
			"Download 25%.", "Download 50%.", "Download 75%.", "Download 100%.", "Saved /out/doc.txt",
		}, messages)
		content, readErr := afero.ReadFile(fs, "/out/doc.txt")
		require.NoError(t, readErr)
		assert.Equal(t, "0123456789", string(content))
		assert.Equal(t, []string{"doc-1"}, provider.FetchedIDs)
	})

	t.Run("should not create the destination when the provider fails", func(t *testing.T) {
		t.Parallel()

		// given
		fs := afero.NewMemMapFs()
		boom := errors.New("connection reset")
		cmd := newFetchFileCommand(&doubles.StubRemoteFileRepository{Content: []byte("x"), Err: boom}, fs)

		// when
		_, err := commands.Collect(cmd.Execute(context.Background(), commands.FetchFileOptions{
			Provider: "stub", FileID: "doc-1", Destination: "/out/doc.txt",
		}))

		// then
		var fetchErr *entities.RemoteFetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, "doc-1", fetchErr.FileID)
		require.ErrorIs(t, err, boom)
		exists, _ := afero.Exists(fs, "/out/doc.txt")
		assert.False(t, exists)
		entries, _ := afero.ReadDir(fs, "/out")
		assert.Empty(t, entries)
	})

	t.Run("should fail for an unknown provider", func(t *testing.T) {
		t.Parallel()

		// given
		cmd := newFetchFileCommand(&doubles.StubRemoteFileRepository{}, afero.NewMemMapFs())

		// when
		_, err := commands.Collect(cmd.Execute(context.Background(), commands.FetchFileOptions{
			Provider: "ftp", FileID: "doc-1", Destination: "/out/doc.txt",
		}))

		// then
		var fetchErr *entities.RemoteFetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, "ftp", fetchErr.Provider)
	})

	t.Run("should cancel the transfer when the consumer stops", func(t *testing.T) {
		t.Parallel()

		// given
		fs := afero.NewMemMapFs()
		provider := &doubles.StubRemoteFileRepository{Content: []byte("0123456789"), Steps: 4}
		cmd := newFetchFileCommand(provider, fs)

		// when
		for _, err := range cmd.Execute(context.Background(), commands.FetchFileOptions{
			Provider: "stub", FileID: "doc-1", Destination: "/out/doc.txt",
		}) {
			require.NoError(t, err)
			break
		}

		// then
		require.ErrorIs(t, provider.CtxErr, context.Canceled)
		exists, _ := afero.Exists(fs, "/out/doc.txt")
		assert.False(t, exists)
	})

	t.Run("should require a file identifier and destination", func(t *testing.T) {
		t.Parallel()

		// given
		provider := &doubles.StubRemoteFileRepository{}
		cmd := newFetchFileCommand(provider, afero.NewMemMapFs())

		// when
		_, err := commands.Collect(cmd.Execute(context.Background(), commands.FetchFileOptions{Provider: "stub"}))

		// then
		require.Error(t, err)
		assert.Empty(t, provider.FetchedIDs)
	})
}
