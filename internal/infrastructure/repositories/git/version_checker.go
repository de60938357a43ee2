package git

import (
	"context"
	"fmt"
	"regexp"

	"golang.org/x/mod/semver"

	"github.com/rios0rios0/gitpuller/internal/domain/repositories"
)

// MinimumVersion is the oldest git release the puller relies on.
const MinimumVersion = "v2.0.0"

var versionPattern = regexp.MustCompile(`(\d+)\.(\d+)(?:\.(\d+))?`)

// VersionChecker verifies the git binary before a pull touches anything.
type VersionChecker struct {
	runner repositories.CommandRunner
}

// NewVersionChecker creates a VersionChecker.
func NewVersionChecker(runner repositories.CommandRunner) *VersionChecker {
	return &VersionChecker{runner: runner}
}

// Check returns the installed git version in semver form.
func (it *VersionChecker) Check(ctx context.Context) (string, error) {
	output, err := it.runner.Output(ctx, "", "version")
	if err != nil {
		return "", fmt.Errorf("git is not available: %w", err)
	}

	version, ok := ParseVersion(output)
	if !ok {
		return "", fmt.Errorf("unable to parse git version from %q", output)
	}
	if semver.Compare(version, MinimumVersion) < 0 {
		return version, fmt.Errorf("git %s is too old, %s or newer is required", version, MinimumVersion)
	}
	return version, nil
}

// ParseVersion extracts a semver string from `git version` output, for
// example "git version 2.39.3 (Apple Git-146)" gives "v2.39.3".
func ParseVersion(output string) (string, bool) {
	match := versionPattern.FindStringSubmatch(output)
	if match == nil {
		return "", false
	}

	patch := match[3]
	if patch == "" {
		patch = "0"
	}
	version := fmt.Sprintf("v%s.%s.%s", match[1], match[2], patch)
	return version, semver.IsValid(version)
}
