package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	logger "github.com/sirupsen/logrus"
)

// DepthEnvVar overrides the default clone depth when set to a non-negative integer.
const DepthEnvVar = "GITPULLER_DEPTH"

// DefaultCloneDepth is used when neither the caller nor DepthEnvVar provides a depth.
const DefaultCloneDepth = 1

// RepositorySpec describes one working copy and the upstream branch it follows.
// It is immutable for the lifetime of a single pull.
type RepositorySpec struct {
	RemoteURL  string
	BranchName string
	LocalPath  string
	// CloneDepth bounds the history fetched on clone; zero means full history.
	CloneDepth int
}

// NewRepositorySpec builds a spec with an absolute local path and the
// default clone depth.
func NewRepositorySpec(remoteURL, branchName, localPath string) (RepositorySpec, error) {
	absPath, err := filepath.Abs(localPath)
	if err != nil {
		return RepositorySpec{}, fmt.Errorf("invalid path %q: %w", localPath, err)
	}

	spec := RepositorySpec{
		RemoteURL:  remoteURL,
		BranchName: branchName,
		LocalPath:  absPath,
		CloneDepth: DefaultDepth(),
	}
	return spec, spec.Validate()
}

// WithDepth returns a copy of the spec with the given clone depth.
func (s RepositorySpec) WithDepth(depth int) RepositorySpec {
	s.CloneDepth = depth
	return s
}

// UpstreamRef is the remote-tracking ref the working copy is reconciled against.
func (s RepositorySpec) UpstreamRef() string {
	return "origin/" + s.BranchName
}

// Validate checks the spec for required values.
func (s RepositorySpec) Validate() error {
	if s.RemoteURL == "" {
		return errors.New("remote URL is required")
	}
	if s.BranchName == "" {
		return errors.New("branch name is required")
	}
	if s.LocalPath == "" {
		return errors.New("local path is required")
	}
	if s.CloneDepth < 0 {
		return fmt.Errorf("clone depth must not be negative, got %d", s.CloneDepth)
	}
	return nil
}

// DefaultDepth returns DefaultCloneDepth unless DepthEnvVar holds a valid override.
func DefaultDepth() int {
	raw := os.Getenv(DepthEnvVar)
	if raw == "" {
		return DefaultCloneDepth
	}

	depth, err := strconv.Atoi(raw)
	if err != nil || depth < 0 {
		logger.Warnf("Ignoring invalid %s value %q", DepthEnvVar, raw)
		return DefaultCloneDepth
	}
	return depth
}
