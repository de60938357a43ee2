//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/gitpuller/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// RepositorySpecBuilder helps create test repository specs with a fluent interface.
type RepositorySpecBuilder struct {
	*testkit.BaseBuilder
	remoteURL  string
	branchName string
	localPath  string
	cloneDepth int
}

// NewRepositorySpecBuilder creates a new repository spec builder with sensible defaults.
func NewRepositorySpecBuilder() *RepositorySpecBuilder {
	return &RepositorySpecBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		remoteURL:   "https://example.com/org/repo.git",
		branchName:  "main",
		localPath:   "/tmp/gitpuller/repo",
		cloneDepth:  entities.DefaultCloneDepth,
	}
}

// WithRemoteURL sets the upstream remote URL.
func (b *RepositorySpecBuilder) WithRemoteURL(remoteURL string) *RepositorySpecBuilder {
	b.remoteURL = remoteURL
	return b
}

// WithBranchName sets the upstream branch.
func (b *RepositorySpecBuilder) WithBranchName(branchName string) *RepositorySpecBuilder {
	b.branchName = branchName
	return b
}

// WithLocalPath sets the working copy path.
func (b *RepositorySpecBuilder) WithLocalPath(localPath string) *RepositorySpecBuilder {
	b.localPath = localPath
	return b
}

// WithCloneDepth sets the clone depth.
func (b *RepositorySpecBuilder) WithCloneDepth(depth int) *RepositorySpecBuilder {
	b.cloneDepth = depth
	return b
}

// Build creates the spec (satisfies testkit.Builder interface).
func (b *RepositorySpecBuilder) Build() interface{} {
	return b.BuildSpec()
}

// BuildSpec creates the spec with a concrete return type.
func (b *RepositorySpecBuilder) BuildSpec() entities.RepositorySpec {
	return entities.RepositorySpec{
		RemoteURL:  b.remoteURL,
		BranchName: b.branchName,
		LocalPath:  b.localPath,
		CloneDepth: b.cloneDepth,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *RepositorySpecBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.remoteURL = "https://example.com/org/repo.git"
	b.branchName = "main"
	b.localPath = "/tmp/gitpuller/repo"
	b.cloneDepth = entities.DefaultCloneDepth
	return b
}

// Clone creates a deep copy of the RepositorySpecBuilder.
func (b *RepositorySpecBuilder) Clone() testkit.Builder {
	return &RepositorySpecBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		remoteURL:   b.remoteURL,
		branchName:  b.branchName,
		localPath:   b.localPath,
		cloneDepth:  b.cloneDepth,
	}
}
