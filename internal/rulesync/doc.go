// Package rulesync reconciles ruleset manifests against GitHub. It validates
// every listed rule repository through the githubapi validator, rewrites
// manifests to drop ineligible entries, and reports what changed. The package
// also exposes the cobra command builder for the sync subcommand.
package rulesync
