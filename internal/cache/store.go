package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gavel-review/gavel/internal/project"
)

// DefaultDir is the project context cache location relative to the repo root.
const DefaultDir = ".gavel/cache"

const contextFile = "project-context.json"

// Store persists the analyzed project context on disk with a TTL.
type Store struct {
	dir string
	ttl time.Duration
}

// NewStore creates a Store rooted at dir. If dir is empty, DefaultDir is
// used. ttlDays outside 1-30 falls back to 7.
func NewStore(dir string, ttlDays int) *Store {
	if dir == "" {
		dir = DefaultDir
	}
	if ttlDays < 1 || ttlDays > 30 {
		ttlDays = 7
	}
	return &Store{
		dir: dir,
		ttl: time.Duration(ttlDays) * 24 * time.Hour,
	}
}

// Path returns the location of the cached context file.
func (s *Store) Path() string {
	return filepath.Join(s.dir, contextFile)
}

// Load returns the cached context when it exists, parses, and is within the
// TTL. Any failure to read or decode is treated as a miss, never an error.
func (s *Store) Load() (*project.Context, bool) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		return nil, false
	}
	var ctx project.Context
	if err := json.Unmarshal(data, &ctx); err != nil {
		return nil, false
	}
	if ctx.AnalyzedAt == "" {
		return nil, false
	}
	analyzedAt, err := time.Parse(time.RFC3339, ctx.AnalyzedAt)
	if err != nil {
		return nil, false
	}
	if time.Since(analyzedAt) > s.ttl {
		return nil, false
	}
	return &ctx, true
}

// Save stamps the context with the current time and writes it atomically.
func (s *Store) Save(ctx *project.Context) error {
	ctx.AnalyzedAt = time.Now().UTC().Format(time.RFC3339)
	if ctx.Version == "" {
		ctx.Version = project.SchemaVersion
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}
	data, err := json.MarshalIndent(ctx, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling project context: %w", err)
	}

	// Write to a temp file and rename so readers never see a partial file.
	tmp, err := os.CreateTemp(s.dir, contextFile+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp cache file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path()); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing cache file: %w", err)
	}
	return nil
}

// Invalidate removes the cached context. A missing file is not an error.
func (s *Store) Invalidate() error {
	if err := os.Remove(s.Path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing cache file: %w", err)
	}
	return nil
}

// Info describes the cache state for reporting. It is best effort and never
// fails.
type Info struct {
	Exists     bool
	ModifiedAt time.Time
	Version    string
}

// Stat reports whether a cache file exists, its modification time, and the
// cached schema version if readable.
func (s *Store) Stat() Info {
	info := Info{}
	fi, err := os.Stat(s.Path())
	if err != nil {
		return info
	}
	info.Exists = true
	info.ModifiedAt = fi.ModTime()
	if data, err := os.ReadFile(s.Path()); err == nil {
		var ctx project.Context
		if json.Unmarshal(data, &ctx) == nil {
			info.Version = ctx.Version
		}
	}
	return info
}
