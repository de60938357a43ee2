package git

import (
	"context"
	"errors"
	"os"

	gogit "github.com/go-git/go-git/v5"
	"github.com/spf13/afero"

	"github.com/rios0rios0/gitpuller/internal/domain/entities"
	"github.com/rios0rios0/gitpuller/internal/domain/repositories"
)

// WorkingCopyRepository classifies a local path using go-git, without invoking
// the git binary.
type WorkingCopyRepository struct {
	fs afero.Fs
}

// NewWorkingCopyRepository creates a WorkingCopyRepository.
func NewWorkingCopyRepository(fs afero.Fs) *WorkingCopyRepository {
	return &WorkingCopyRepository{fs: fs}
}

// Inspect returns WorkingCopyMissing for an absent path or an empty directory,
// and WorkingCopyValid for a repository with a resolvable HEAD and an origin
// remote. Anything else is a *entities.RepositoryStateError.
func (it *WorkingCopyRepository) Inspect(_ context.Context, path string) (repositories.WorkingCopyState, error) {
	info, err := it.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return repositories.WorkingCopyMissing, nil
		}
		return 0, &entities.RepositoryStateError{Path: path, Reason: "unable to access path", Err: err}
	}
	if !info.IsDir() {
		return 0, &entities.RepositoryStateError{Path: path, Reason: "path is not a directory"}
	}

	entries, err := afero.ReadDir(it.fs, path)
	if err != nil {
		return 0, &entities.RepositoryStateError{Path: path, Reason: "unable to list directory", Err: err}
	}
	if len(entries) == 0 {
		return repositories.WorkingCopyMissing, nil
	}

	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit:          false,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return 0, &entities.RepositoryStateError{
				Path:   path,
				Reason: "directory is not empty and is not a git working copy",
			}
		}
		return 0, &entities.RepositoryStateError{Path: path, Reason: "unable to open repository", Err: err}
	}

	if _, headErr := repo.Head(); headErr != nil {
		return 0, &entities.RepositoryStateError{Path: path, Reason: "unable to resolve HEAD", Err: headErr}
	}
	if _, remoteErr := repo.Remote("origin"); remoteErr != nil {
		return 0, &entities.RepositoryStateError{Path: path, Reason: "remote origin is not configured", Err: remoteErr}
	}

	return repositories.WorkingCopyValid, nil
}
