package entities

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all entity providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Settings start from defaults; controllers overlay the config file and flags
	return container.Provide(DefaultSettings)
}
