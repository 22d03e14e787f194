// Package githubapi talks to the GitHub REST API on behalf of the sync
// engine. It exposes a narrow repository inventory (metadata lookup plus
// paginated tag listing) and the eligibility validator built on top of it.
package githubapi
