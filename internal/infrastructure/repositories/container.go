package repositories

import (
	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/gitpuller/internal/domain/repositories"
	gitRepo "github.com/rios0rios0/gitpuller/internal/infrastructure/repositories/git"
	lockRepo "github.com/rios0rios0/gitpuller/internal/infrastructure/repositories/lock"
	fileRepo "github.com/rios0rios0/gitpuller/internal/infrastructure/repositories/remotefile"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register the filesystem and clock shared by the lock manager and the reconciler
	constructors := []interface{}{
		afero.NewOsFs,
		clockwork.NewRealClock,
		gitRepo.NewCommandRunner,
		gitRepo.NewChangeScanner,
		gitRepo.NewWorkingCopyRepository,
		gitRepo.NewVersionChecker,
		lockRepo.NewIndexLockRepository,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *gitRepo.CommandRunner) domainRepos.CommandRunner {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *gitRepo.ChangeScanner) domainRepos.ChangeScanner {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *gitRepo.WorkingCopyRepository) domainRepos.WorkingCopyRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *gitRepo.VersionChecker) domainRepos.ToolVersionChecker {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *lockRepo.IndexLockRepository) domainRepos.LockRepository {
		return impl
	}); err != nil {
		return err
	}

	// Register remote file registry with all provider factories
	if err := container.Provide(func() *RemoteFileRegistry {
		reg := NewRemoteFileRegistry()
		reg.Register("s3", fileRepo.NewS3ProviderFromEnv)
		reg.Register("http", fileRepo.NewHTTPProviderFromEnv)
		return reg
	}); err != nil {
		return err
	}

	return nil
}
