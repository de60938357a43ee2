package internal

import "github.com/rios0rios0/gitpuller/internal/domain/entities"

// AppInternal holds every controller exposed on the command line.
type AppInternal struct {
	controllers []entities.Controller
}

// NewAppInternal creates a new AppInternal.
func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: *controllers}
}

// GetControllers returns the registered controllers.
func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}
