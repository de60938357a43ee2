package commands

// CloneArgs exports cloneArgs for testing.
var CloneArgs = cloneArgs //nolint:gochecknoglobals // test export

// SplitExt exports splitExt for testing.
var SplitExt = splitExt //nolint:gochecknoglobals // test export
