package analyzer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gavel-review/gavel/internal/config"
	"github.com/gavel-review/gavel/internal/llm"
)

type stubClient struct {
	content string
	err     error
	lastReq llm.Request
}

func (s *stubClient) Name() string { return "stub" }

func (s *stubClient) Complete(ctx context.Context, req llm.Request) (llm.Response, error) {
	s.lastReq = req
	if s.err != nil {
		return llm.Response{}, s.err
	}
	return llm.Response{Content: s.content}, nil
}

func TestAnalyzeParsesModelResponse(t *testing.T) {
	stub := &stubClient{content: `{
		"tech_stack": ["go", "cobra"],
		"language": "go",
		"frameworks": ["cobra"],
		"dependencies": {"cobra": "1.10"},
		"critical_paths": ["internal/auth/"],
		"code_style": "gofmt",
		"directory_structure": "cmd, internal",
		"linter_config": {"linter": "golangci-lint"}
	}`}
	cfg := config.Default()
	cfg.CriticalPaths = []string{"internal/payment/", "internal/auth/"}

	pc := New(stub, cfg).Analyze(context.Background(), t.TempDir())
	assert.Equal(t, []string{"go", "cobra"}, pc.TechStack)
	assert.Equal(t, "go", pc.Language)
	assert.Equal(t, "gofmt", pc.CodeStyle)
	// Configured paths merge in after the model's, without duplicates.
	assert.Equal(t, []string{"internal/auth/", "internal/payment/"}, pc.CriticalPaths)
}

func TestAnalyzeFallsBackOnModelError(t *testing.T) {
	stub := &stubClient{err: errors.New("model down")}
	cfg := config.Default()
	cfg.CriticalPaths = []string{"src/auth/"}

	pc := New(stub, cfg).Analyze(context.Background(), t.TempDir())
	assert.Equal(t, []string{"unknown"}, pc.TechStack)
	assert.Equal(t, "unknown", pc.Language)
	assert.Equal(t, []string{"src/auth/"}, pc.CriticalPaths)
}

func TestAnalyzeFallsBackOnMalformedJSON(t *testing.T) {
	stub := &stubClient{content: "I could not produce JSON, sorry."}

	pc := New(stub, config.Default()).Analyze(context.Background(), t.TempDir())
	assert.Equal(t, []string{"unknown"}, pc.TechStack)
}

func TestAnalyzeDetectsProjectVersion(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"version":"3.0.0"}`), 0o644))
	stub := &stubClient{content: `{"tech_stack":["node"],"language":"javascript"}`}

	pc := New(stub, config.Default()).Analyze(context.Background(), dir)
	assert.Equal(t, "3.0.0", pc.ProjectVersion)
}

func TestCollectProjectInfo(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module x\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte("{}"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "internal"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	info := collectProjectInfo(dir)
	assert.Contains(t, info, "Found: go.mod")
	assert.Contains(t, info, "Found: package.json")
	assert.Contains(t, info, "Top-level directories: internal")
	assert.NotContains(t, info, ".git")
}

func TestCollectProjectInfoEmpty(t *testing.T) {
	assert.Equal(t, "No config files found", collectProjectInfo(t.TempDir()))
}

func TestAnalyzePromptMentionsRoot(t *testing.T) {
	stub := &stubClient{content: `{"tech_stack":["go"]}`}
	dir := t.TempDir()

	New(stub, config.Default()).Analyze(context.Background(), dir)
	assert.Contains(t, stub.lastReq.User, "Root directory: "+dir)
	assert.Contains(t, stub.lastReq.System, "project analysis expert")
}
