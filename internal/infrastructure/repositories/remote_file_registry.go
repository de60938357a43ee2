package repositories

import (
	"context"
	"fmt"
	"sort"

	domainRepos "github.com/rios0rios0/gitpuller/internal/domain/repositories"
)

// RemoteFileFactory builds a remote file provider. Construction is deferred
// until the provider is needed because it may load credentials.
type RemoteFileFactory func(ctx context.Context) (domainRepos.RemoteFileRepository, error)

// RemoteFileRegistry manages all registered remote file providers.
type RemoteFileRegistry struct {
	providers map[string]RemoteFileFactory
}

// NewRemoteFileRegistry creates an empty remote file registry.
func NewRemoteFileRegistry() *RemoteFileRegistry {
	return &RemoteFileRegistry{
		providers: make(map[string]RemoteFileFactory),
	}
}

// Register adds a provider factory under the given name (e.g. "s3").
func (r *RemoteFileRegistry) Register(name string, factory RemoteFileFactory) {
	r.providers[name] = factory
}

// Get returns a configured provider instance for the given name.
func (r *RemoteFileRegistry) Get(ctx context.Context, name string) (domainRepos.RemoteFileRepository, error) {
	factory, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown remote file provider: %q", name)
	}
	return factory(ctx)
}

// Names returns the sorted list of registered provider names.
func (r *RemoteFileRegistry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
