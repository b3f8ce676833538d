// Package cache persists the analyzed project context between runs.
//
// The context is stored as a single JSON file under .gavel/cache with an
// analyzed_at timestamp. Reads treat a missing, corrupt, or expired file as
// a cache miss rather than an error; writes go through a temp file and
// rename so a crash never leaves a partial file behind.
//
// DetectVersion reads the project version from package.json, pyproject.toml,
// or Cargo.toml so callers can warn when the manifest changed since the
// context was cached.
package cache
