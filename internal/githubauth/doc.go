// Package githubauth resolves GitHub authentication tokens from the process
// environment or from explicitly declared token sources.
package githubauth
