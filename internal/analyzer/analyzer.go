package analyzer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gavel-review/gavel/internal/cache"
	"github.com/gavel-review/gavel/internal/config"
	"github.com/gavel-review/gavel/internal/llm"
	"github.com/gavel-review/gavel/internal/project"
)

const systemPrompt = `You are a project analysis expert. Your task is to analyze the project structure
and provide a comprehensive summary that will help with code review.

Analyze the following aspects:
1. Tech stack (languages, frameworks)
2. Dependencies and package managers
3. Code style conventions (linters, formatters)
4. Directory structure and key modules
5. Critical paths (auth, payment, admin, etc.)

Provide your analysis in JSON format with the following structure:
{
    "tech_stack": ["language1", "framework1"],
    "language": "primary language",
    "frameworks": ["framework1", "framework2"],
    "dependencies": {"package1": "version1"},
    "critical_paths": ["src/auth", "src/payment"],
    "code_style": "description of code style",
    "directory_structure": "tree structure description",
    "linter_config": {"linter": "config"}
}

Be thorough but concise. Focus on what's relevant for code review.`

// Manifest and linter files worth surfacing to the model.
var configFiles = []string{
	"package.json",
	"pyproject.toml",
	"requirements.txt",
	"Cargo.toml",
	"go.mod",
	"pom.xml",
	"tsconfig.json",
	"next.config.js",
	"vite.config.ts",
	".eslintrc",
	".prettierrc",
}

const maxTopLevelDirs = 10

// Analyzer derives a project context from a lightweight scan plus one model
// call.
type Analyzer struct {
	client llm.Client
	cfg    config.Config
}

// New creates an Analyzer.
func New(client llm.Client, cfg config.Config) *Analyzer {
	return &Analyzer{client: client, cfg: cfg}
}

// Analyze builds a context for the repository at root. It never fails: when
// the model call or response parsing goes wrong, it falls back to a minimal
// placeholder context so the review can still run.
func (a *Analyzer) Analyze(ctx context.Context, root string) *project.Context {
	filesInfo := collectProjectInfo(root)

	pc, err := a.modelAnalyze(ctx, filesInfo, root)
	if err != nil {
		pc = project.Minimal(a.cfg.CriticalPaths)
	} else {
		pc.MergeCriticalPaths(a.cfg.CriticalPaths)
	}

	if v, ok := cache.DetectVersion(root); ok {
		pc.ProjectVersion = v
	}
	return pc
}

func (a *Analyzer) modelAnalyze(ctx context.Context, filesInfo, root string) (*project.Context, error) {
	resp, err := a.client.Complete(ctx, llm.Request{
		System:      systemPrompt,
		User:        fmt.Sprintf("Project files:\n%s\n\nRoot directory: %s", filesInfo, root),
		Temperature: a.cfg.LLM.Temperature,
	})
	if err != nil {
		return nil, err
	}

	var raw struct {
		TechStack          []string          `json:"tech_stack"`
		Language           string            `json:"language"`
		Frameworks         []string          `json:"frameworks"`
		Dependencies       map[string]string `json:"dependencies"`
		CriticalPaths      []string          `json:"critical_paths"`
		CodeStyle          string            `json:"code_style"`
		DirectoryStructure string            `json:"directory_structure"`
		LinterConfig       map[string]any    `json:"linter_config"`
	}
	if err := llm.DecodeJSON(resp.Content, &raw); err != nil {
		return nil, err
	}

	pc := &project.Context{
		TechStack:          raw.TechStack,
		Language:           raw.Language,
		Frameworks:         raw.Frameworks,
		Dependencies:       raw.Dependencies,
		CriticalPaths:      nil,
		CodeStyle:          raw.CodeStyle,
		DirectoryStructure: raw.DirectoryStructure,
		LinterConfig:       raw.LinterConfig,
		Version:            project.SchemaVersion,
	}
	if pc.TechStack == nil {
		pc.TechStack = []string{}
	}
	if pc.Frameworks == nil {
		pc.Frameworks = []string{}
	}
	if pc.Dependencies == nil {
		pc.Dependencies = map[string]string{}
	}
	pc.MergeCriticalPaths(raw.CriticalPaths)
	return pc, nil
}

// collectProjectInfo lists the recognized manifests present at root and up
// to ten top-level directories. The result is the user prompt payload.
func collectProjectInfo(root string) string {
	var parts []string

	for _, cf := range configFiles {
		if _, err := os.Stat(filepath.Join(root, cf)); err == nil {
			parts = append(parts, "Found: "+cf)
		}
	}

	if entries, err := os.ReadDir(root); err == nil {
		var dirs []string
		for _, e := range entries {
			if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
				dirs = append(dirs, e.Name())
			}
		}
		sort.Strings(dirs)
		if len(dirs) > maxTopLevelDirs {
			dirs = dirs[:maxTopLevelDirs]
		}
		if len(dirs) > 0 {
			parts = append(parts, "Top-level directories: "+strings.Join(dirs, ", "))
		}
	}

	if len(parts) == 0 {
		return "No config files found"
	}
	return strings.Join(parts, "\n")
}
