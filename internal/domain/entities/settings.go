package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultCommandTimeout bounds every git invocation unless configured otherwise.
	DefaultCommandTimeout = 10 * time.Minute
	// DefaultConcurrency is how many working copies the sync command pulls at once.
	DefaultConcurrency = 4
)

// Settings is the top-level configuration for gitpuller.
type Settings struct {
	Repositories   []RepositoryConfig `yaml:"repositories"`
	CommandTimeout time.Duration      `yaml:"command_timeout"`
	Concurrency    int                `yaml:"concurrency"`
	Identity       CommitIdentity     `yaml:"identity"`
}

// RepositoryConfig describes one working copy to keep in sync.
type RepositoryConfig struct {
	RemoteURL string `yaml:"remote_url"`
	Branch    string `yaml:"branch"`
	Path      string `yaml:"path"`
	// Depth is a pointer so that an explicit 0 (full history) differs from "unset".
	Depth *int `yaml:"depth"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings reads, expands and validates a configuration file.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	for i := range settings.Repositories {
		repo := &settings.Repositories[i]
		repo.RemoteURL = ExpandEnv(repo.RemoteURL)
		repo.Branch = ExpandEnv(repo.Branch)
		repo.Path = ExpandEnv(repo.Path)
	}
	settings.Identity.Name = ExpandEnv(settings.Identity.Name)
	settings.Identity.Email = ExpandEnv(settings.Identity.Email)

	settings.applyDefaults()

	if validateErr := settings.validate(); validateErr != nil {
		return nil, validateErr
	}

	return &settings, nil
}

// DefaultSettings returns settings with no repositories and every default applied.
func DefaultSettings() *Settings {
	settings := &Settings{}
	settings.applyDefaults()
	return settings
}

// Specs converts every configured repository into a RepositorySpec.
// Relative paths are resolved against the current working directory.
func (s *Settings) Specs() ([]RepositorySpec, error) {
	specs := make([]RepositorySpec, 0, len(s.Repositories))
	for i, repo := range s.Repositories {
		spec, err := NewRepositorySpec(repo.RemoteURL, repo.Branch, repo.Path)
		if err != nil {
			return nil, fmt.Errorf("repositories[%d]: %w", i, err)
		}
		if repo.Depth != nil {
			spec = spec.WithDepth(*repo.Depth)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// FindConfigFile searches for a configuration file in standard locations.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".gitpuller.yaml",
		".gitpuller.yml",
		"gitpuller.yaml",
		"gitpuller.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// ExpandEnv replaces ${VAR} references with their environment values.
func ExpandEnv(raw string) string {
	if raw == "" {
		return raw
	}

	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

func (s *Settings) applyDefaults() {
	if s.CommandTimeout == 0 {
		s.CommandTimeout = DefaultCommandTimeout
	}
	if s.Concurrency == 0 {
		s.Concurrency = DefaultConcurrency
	}
	if s.Identity.IsZero() {
		s.Identity = DefaultCommitIdentity
	}
}

func (s *Settings) validate() error {
	if s.CommandTimeout < 0 {
		return errors.New("command_timeout must not be negative")
	}
	if s.Concurrency < 0 {
		return errors.New("concurrency must not be negative")
	}
	if s.Identity.Name == "" || s.Identity.Email == "" {
		return errors.New("identity requires both name and email")
	}

	for i, repo := range s.Repositories {
		if repo.RemoteURL == "" {
			return fmt.Errorf("repositories[%d].remote_url is required", i)
		}
		if repo.Branch == "" {
			return fmt.Errorf("repositories[%d].branch is required", i)
		}
		if repo.Path == "" {
			return fmt.Errorf("repositories[%d].path is required", i)
		}
		if repo.Depth != nil && *repo.Depth < 0 {
			return fmt.Errorf("repositories[%d].depth must not be negative", i)
		}
	}

	return nil
}
