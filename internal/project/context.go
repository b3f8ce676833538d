// Package project defines the project context: a model-derived summary of a
// repository's tech stack, structure, and conventions that is cached between
// review runs and injected into every review prompt.
package project

import "time"

// SchemaVersion is stamped into every new context snapshot.
const SchemaVersion = "1.0.0"

// Context captures what the analyzer learned about a project. It is created
// by the analyzer, persisted by the cache store, and treated as read-only
// afterwards except for the timestamp refresh on save.
type Context struct {
	TechStack          []string          `json:"tech_stack"`
	Language           string            `json:"language,omitempty"`
	Frameworks         []string          `json:"frameworks"`
	Dependencies       map[string]string `json:"dependencies"`
	CriticalPaths      []string          `json:"critical_paths"`
	CodeStyle          string            `json:"code_style,omitempty"`
	DirectoryStructure string            `json:"directory_structure,omitempty"`
	LinterConfig       map[string]any    `json:"linter_config,omitempty"`
	ProjectVersion     string            `json:"project_version,omitempty"`
	Version            string            `json:"version"`
	AnalyzedAt         string            `json:"analyzed_at"`
}

// Minimal returns a placeholder context for runs with no prior analysis.
// Critical paths come straight from configuration.
func Minimal(criticalPaths []string) *Context {
	c := &Context{
		TechStack:     []string{"unknown"},
		Language:      "unknown",
		Frameworks:    []string{},
		Dependencies:  map[string]string{},
		CriticalPaths: nil,
		Version:       SchemaVersion,
		AnalyzedAt:    time.Now().Format(time.RFC3339),
	}
	c.MergeCriticalPaths(criticalPaths)
	return c
}

// MergeCriticalPaths appends the given prefixes and removes duplicates,
// preserving first-seen order. Critical paths have set semantics even though
// they are stored as a list.
func (c *Context) MergeCriticalPaths(paths []string) {
	seen := make(map[string]bool, len(c.CriticalPaths)+len(paths))
	merged := make([]string, 0, len(c.CriticalPaths)+len(paths))
	for _, p := range append(append([]string{}, c.CriticalPaths...), paths...) {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		merged = append(merged, p)
	}
	c.CriticalPaths = merged
}
