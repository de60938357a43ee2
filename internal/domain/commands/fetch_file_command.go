package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/rios0rios0/gitpuller/internal/domain/entities"
	infraRepos "github.com/rios0rios0/gitpuller/internal/infrastructure/repositories"
)

// FetchFile is the interface for downloading a file from a remote content provider.
type FetchFile interface {
	Execute(ctx context.Context, opts FetchFileOptions) Events
}

// FetchFileOptions holds runtime options for a single download.
type FetchFileOptions struct {
	Provider    string
	FileID      string
	Destination string
}

// FetchFileCommand downloads a file by identifier and writes it to disk.
// The destination only appears once the download completed.
type FetchFileCommand struct {
	registry *infraRepos.RemoteFileRegistry
	fs       afero.Fs
}

// NewFetchFileCommand creates a new FetchFileCommand.
func NewFetchFileCommand(registry *infraRepos.RemoteFileRegistry, fs afero.Fs) *FetchFileCommand {
	return &FetchFileCommand{registry: registry, fs: fs}
}

// Execute returns the download as a lazy event stream of "Download N%." messages.
// Stopping consumption cancels the transfer.
func (it *FetchFileCommand) Execute(ctx context.Context, opts FetchFileOptions) Events {
	return func(yield func(entities.ProgressEvent, error) bool) {
		if opts.FileID == "" || opts.Destination == "" {
			yield(entities.ProgressEvent{}, entities.NewSyncError(
				entities.StepRemoteFile, errors.New("file identifier and destination are required"),
			))
			return
		}

		provider, err := it.registry.Get(ctx, opts.Provider)
		if err != nil {
			yield(entities.ProgressEvent{}, entities.NewSyncError(entities.StepRemoteFile, &entities.RemoteFetchError{
				Provider: opts.Provider, FileID: opts.FileID, Err: err,
			}))
			return
		}

		dir := filepath.Dir(opts.Destination)
		if mkdirErr := it.fs.MkdirAll(dir, 0o755); mkdirErr != nil {
			yield(entities.ProgressEvent{}, entities.NewSyncError(entities.StepRemoteFile, mkdirErr))
			return
		}
		tmp, err := afero.TempFile(it.fs, dir, ".gitpuller-download-*")
		if err != nil {
			yield(entities.ProgressEvent{}, entities.NewSyncError(entities.StepRemoteFile, err))
			return
		}
		committed := false
		defer func() {
			_ = tmp.Close()
			if !committed {
				_ = it.fs.Remove(tmp.Name())
			}
		}()

		fetchCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		stopped := false
		last := -1
		progress := func(percent int) {
			if stopped || percent == last {
				return
			}
			last = percent
			if !yield(entities.NewProgressEvent(entities.StepRemoteFile, fmt.Sprintf("Download %d%%.", percent)), nil) {
				stopped = true
				cancel()
			}
		}

		logger.Debugf("[fetch] Downloading %q from %s into %s", opts.FileID, provider.Name(), opts.Destination)
		fetchErr := provider.Fetch(fetchCtx, opts.FileID, tmp, progress)
		if stopped {
			return
		}
		if fetchErr != nil {
			yield(entities.ProgressEvent{}, entities.NewSyncError(entities.StepRemoteFile, &entities.RemoteFetchError{
				Provider: provider.Name(), FileID: opts.FileID, Err: fetchErr,
			}))
			return
		}

		if closeErr := tmp.Close(); closeErr != nil {
			yield(entities.ProgressEvent{}, entities.NewSyncError(entities.StepRemoteFile, closeErr))
			return
		}
		if renameErr := it.fs.Rename(tmp.Name(), opts.Destination); renameErr != nil {
			yield(entities.ProgressEvent{}, entities.NewSyncError(entities.StepRemoteFile, renameErr))
			return
		}
		committed = true

		yield(entities.NewProgressEvent(entities.StepRemoteFile, "Saved "+opts.Destination), nil)
	}
}
