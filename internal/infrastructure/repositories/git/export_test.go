package git

import "github.com/rios0rios0/gitpuller/internal/domain/entities"

// ScanProgressLines exports scanProgressLines for testing.
var ScanProgressLines = scanProgressLines //nolint:gochecknoglobals // test export

// NewCommandRunnerFor creates a CommandRunner for an arbitrary binary.
func NewCommandRunnerFor(binary string, settings *entities.Settings) *CommandRunner {
	return &CommandRunner{binary: binary, settings: settings}
}
