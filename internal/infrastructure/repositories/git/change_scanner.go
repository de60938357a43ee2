package git

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/rios0rios0/gitpuller/internal/domain/entities"
	"github.com/rios0rios0/gitpuller/internal/domain/repositories"
)

// statusPattern matches a name-status code such as "A", "M" or "R100".
var statusPattern = regexp.MustCompile(`^[A-Z][0-9]*$`)

// ChangeScanner answers questions about a working copy with read-only git queries.
type ChangeScanner struct {
	runner repositories.CommandRunner
}

// NewChangeScanner creates a ChangeScanner on top of the given runner.
func NewChangeScanner(runner repositories.CommandRunner) *ChangeScanner {
	return &ChangeScanner{runner: runner}
}

// IsDirty runs `git diff-files --quiet`. A non-zero exit means dirty; any
// other failure is treated as dirty too.
func (it *ChangeScanner) IsDirty(ctx context.Context, workDir string) bool {
	_, err := it.runner.Output(ctx, workDir, "diff-files", "--quiet")
	return err != nil
}

// FindUpstreamChanged lists, as absolute paths, the files with status kind in
// commits reachable from origin/<branch> but not from HEAD. Rename detection is
// off, so an upstream move shows up as a deletion plus an addition.
func (it *ChangeScanner) FindUpstreamChanged(ctx context.Context, workDir, branch, kind string) ([]string, error) {
	output, err := it.runner.Output(ctx, workDir,
		"-c", "core.quotePath=false",
		"log", "..origin/"+branch, "--oneline", "--name-status", "--no-renames",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list upstream changes: %w", err)
	}

	relative := ParseNameStatus(output, kind)
	files := make([]string, 0, len(relative))
	for _, rel := range relative {
		files = append(files, filepath.Join(workDir, filepath.FromSlash(rel)))
	}
	return files, nil
}

// FindDeletedFiles lists tracked files missing from the working tree.
func (it *ChangeScanner) FindDeletedFiles(ctx context.Context, workDir string) ([]string, error) {
	output, err := it.runner.Output(ctx, workDir, "ls-files", "--deleted", "-z")
	if err != nil {
		return nil, fmt.Errorf("failed to list deleted files: %w", err)
	}
	return splitNul(output), nil
}

// FindUnmergedFiles lists paths left unmerged by a failed merge.
func (it *ChangeScanner) FindUnmergedFiles(ctx context.Context, workDir string) ([]string, error) {
	output, err := it.runner.Output(ctx, workDir, "diff", "--name-only", "-z", "--diff-filter=U")
	if err != nil {
		return nil, fmt.Errorf("failed to list unmerged files: %w", err)
	}
	return splitNul(output), nil
}

// ExistsUpstream reports whether origin/<branch> contains path.
func (it *ChangeScanner) ExistsUpstream(ctx context.Context, workDir, branch, path string) bool {
	object := "origin/" + branch + ":" + filepath.ToSlash(path)
	_, err := it.runner.Output(ctx, workDir, "cat-file", "-e", object)
	return err == nil
}

// Scan combines the individual queries into a ChangeSet.
func (it *ChangeScanner) Scan(ctx context.Context, workDir, branch string) (entities.ChangeSet, error) {
	added, err := it.FindUpstreamChanged(ctx, workDir, branch, repositories.ChangeAdded)
	if err != nil {
		return entities.ChangeSet{}, err
	}

	deleted, err := it.FindDeletedFiles(ctx, workDir)
	if err != nil {
		return entities.ChangeSet{}, err
	}
	stillUpstream := deleted[:0]
	for _, file := range deleted {
		if it.ExistsUpstream(ctx, workDir, branch, file) {
			stillUpstream = append(stillUpstream, file)
		}
	}

	return entities.ChangeSet{
		Dirty:              it.IsDirty(ctx, workDir),
		DeletedFiles:       stillUpstream,
		AddedUpstreamFiles: added,
	}, nil
}

// ParseNameStatus extracts, from `git log --oneline --name-status` output, the
// sorted unique paths whose status code starts with kind. The last path on a
// line is taken, which for a rename or copy entry is its destination.
func ParseNameStatus(output, kind string) []string {
	seen := make(map[string]bool)
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Split(strings.TrimRight(line, "\r"), "\t")
		if len(fields) < 2 || !statusPattern.MatchString(fields[0]) {
			continue
		}
		if !strings.HasPrefix(fields[0], kind) {
			continue
		}
		if path := fields[len(fields)-1]; path != "" {
			seen[path] = true
		}
	}
	return sortedKeys(seen)
}

func splitNul(output string) []string {
	seen := make(map[string]bool)
	for _, entry := range strings.Split(output, "\x00") {
		if entry != "" {
			seen[entry] = true
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
