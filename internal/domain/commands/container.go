package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	constructors := []interface{}{
		NewReconcileCommand,
		NewPullCommand,
		NewSyncCommand,
		NewFetchFileCommand,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *ReconcileCommand) Reconcile {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *PullCommand) Pull {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *SyncCommand) Sync {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *FetchFileCommand) FetchFile {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
