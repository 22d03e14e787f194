// Package discovery locates ruleset manifest files on disk.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

const (
	manifestGlobPatternConstant            = "*.txt"
	missingDirectoryErrorTemplateConstant  = "missing rulesets directory %s"
	directoryNotDirectoryTemplateConstant  = "rulesets path %s is not a directory"
	manifestGlobFailureTemplateConstant    = "unable to list manifests under %s: %w"
	manifestStatInspectionFailureConstant  = "unable to inspect manifest %s: %w"
)

// FilesystemManifestDiscoverer locates *.txt ruleset manifests inside a directory.
type FilesystemManifestDiscoverer struct{}

// NewFilesystemManifestDiscoverer constructs a manifest discoverer backed by filepath.Glob.
func NewFilesystemManifestDiscoverer() *FilesystemManifestDiscoverer {
	return &FilesystemManifestDiscoverer{}
}

// DiscoverManifests returns the sorted manifest files directly inside the
// provided directory. A missing or non-directory path is an error; an empty
// directory yields an empty result.
func (discoverer *FilesystemManifestDiscoverer) DiscoverManifests(rulesetsDirectory string) ([]string, error) {
	directoryInfo, statError := os.Stat(rulesetsDirectory)
	if statError != nil {
		return nil, fmt.Errorf(missingDirectoryErrorTemplateConstant, rulesetsDirectory)
	}
	if !directoryInfo.IsDir() {
		return nil, fmt.Errorf(directoryNotDirectoryTemplateConstant, rulesetsDirectory)
	}

	candidatePaths, globError := filepath.Glob(filepath.Join(rulesetsDirectory, manifestGlobPatternConstant))
	if globError != nil {
		return nil, fmt.Errorf(manifestGlobFailureTemplateConstant, rulesetsDirectory, globError)
	}

	manifestPaths := make([]string, 0, len(candidatePaths))
	for _, candidatePath := range candidatePaths {
		candidateInfo, candidateStatError := os.Stat(candidatePath)
		if candidateStatError != nil {
			return nil, fmt.Errorf(manifestStatInspectionFailureConstant, candidatePath, candidateStatError)
		}
		if candidateInfo.IsDir() {
			continue
		}
		manifestPaths = append(manifestPaths, candidatePath)
	}

	sort.Strings(manifestPaths)
	return manifestPaths, nil
}
