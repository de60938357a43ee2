package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/gitpuller/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	constructors := []interface{}{
		NewPullController,
		NewSyncController,
		NewFetchFileController,
		NewControllers,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	pullController *PullController,
	syncController *SyncController,
	fetchFileController *FetchFileController,
) *[]entities.Controller {
	return &[]entities.Controller{
		pullController,
		syncController,
		fetchFileController,
	}
}
