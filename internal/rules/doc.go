// Package rules models plain-text ruleset manifests: one rule name per line,
// comments introduced by '#', duplicates collapsed on first occurrence. The
// package offers pure parsing and serialization helpers shared by the sync
// engine and its tests.
package rules
