// Package github provides a minimal GitHub REST API client for fetching
// pull-request file changes and posting review comments.
//
// The PR files endpoint already reports filename, status, additions,
// deletions, and patch per file, which maps directly onto diff entries.
// Authentication uses the GITHUB_TOKEN environment variable; the repository
// owner and name can be detected from the local git remote.
package github
