package rulesync

import (
	"context"
	"io/fs"
	"os"
)

// CommandOptions captures the configurable parameters for one sync run.
type CommandOptions struct {
	RulesetsDirectory string
	Organization      string
	RequiredTag       string
	TokenSource       string
	APIBaseURL        string
	CheckOnly         bool
}

// ManifestOutcome describes the reconciliation result for one manifest file.
type ManifestOutcome struct {
	Path    string
	Kept    []string
	Removed []string
	Changed bool
}

// RuleValidator decides whether one rule repository remains eligible.
type RuleValidator interface {
	IsEligible(executionContext context.Context, repositoryName string) (bool, error)
}

// ManifestDiscoverer locates manifest files beneath the rulesets directory.
type ManifestDiscoverer interface {
	DiscoverManifests(rulesetsDirectory string) ([]string, error)
}

// FileSystem abstracts manifest reads and rewrites for deterministic testing.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, permissions fs.FileMode) error
}

// OSFileSystem implements FileSystem using the standard library.
type OSFileSystem struct{}

// ReadFile reads the named file from disk.
func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile persists the named file to disk.
func (OSFileSystem) WriteFile(path string, data []byte, permissions fs.FileMode) error {
	return os.WriteFile(path, data, permissions)
}
