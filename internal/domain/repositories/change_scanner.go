package repositories

import (
	"context"

	"github.com/rios0rios0/gitpuller/internal/domain/entities"
)

// ChangeAdded is the name-status code of a file added upstream.
const ChangeAdded = "A"

// ChangeScanner inspects a working copy with read-only queries.
type ChangeScanner interface {
	// IsDirty reports uncommitted changes to tracked files. Any failure counts as dirty.
	IsDirty(ctx context.Context, workDir string) bool

	// FindUpstreamChanged lists absolute paths with the given change kind in
	// commits reachable from the upstream branch but not from HEAD.
	FindUpstreamChanged(ctx context.Context, workDir, branch, kind string) ([]string, error)

	// FindDeletedFiles lists tracked paths, relative to workDir, missing from disk.
	FindDeletedFiles(ctx context.Context, workDir string) ([]string, error)

	// FindUnmergedFiles lists relative paths left unmerged by a failed merge.
	FindUnmergedFiles(ctx context.Context, workDir string) ([]string, error)

	// ExistsUpstream reports whether the path is present in the upstream branch.
	ExistsUpstream(ctx context.Context, workDir, branch, path string) bool

	// Scan combines the queries above into a ChangeSet.
	Scan(ctx context.Context, workDir, branch string) (entities.ChangeSet, error)
}
