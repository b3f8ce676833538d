package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 7, cfg.Cache.TTLDays)
	assert.Equal(t, ".gavel/cache", cfg.Cache.Dir)
	assert.Equal(t, 1, cfg.Review.Concurrency)
	assert.True(t, cfg.Output.PRComment)
	assert.Equal(t, "markdown", cfg.Output.ReportFormat)
	assert.True(t, cfg.Privacy.RedactSecrets)
}

func TestLoadMissingDefaultFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadKeepsDefaultsForAbsentFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gavel.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm:\n  provider: deepseek\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "deepseek", cfg.LLM.Provider)
	assert.Equal(t, 7, cfg.Cache.TTLDays)
	assert.True(t, cfg.Output.PRComment)
	assert.True(t, cfg.Privacy.RedactSecrets)
}

func TestLoadOverridesBoolDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gavel.yaml")
	raw := "output:\n  prComment: false\nprivacy:\n  redactSecrets: false\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Output.PRComment)
	assert.False(t, cfg.Privacy.RedactSecrets)
}

func TestLoadFullFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gavel.yaml")
	raw := `
llm:
  provider: zhipu
  apiKey: sk-123
  model: glm-4
  temperature: 0.5
criticalPaths:
  - src/auth/
excludePatterns:
  - "*.lock"
cache:
  ttl: 14
  forceRefresh: true
  dir: /tmp/gavel-cache
review:
  concurrency: 8
  memoEntries: 64
output:
  reportFormat: both
customPrompt: prompts/review.txt
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "zhipu", cfg.LLM.Provider)
	assert.Equal(t, "sk-123", cfg.LLM.APIKey)
	assert.Equal(t, "glm-4", cfg.LLM.Model)
	assert.Equal(t, 0.5, cfg.LLM.Temperature)
	assert.Equal(t, []string{"src/auth/"}, cfg.CriticalPaths)
	assert.Equal(t, []string{"*.lock"}, cfg.ExcludePatterns)
	assert.Equal(t, 14, cfg.Cache.TTLDays)
	assert.True(t, cfg.Cache.ForceRefresh)
	assert.Equal(t, "/tmp/gavel-cache", cfg.Cache.Dir)
	assert.Equal(t, 8, cfg.Review.Concurrency)
	assert.Equal(t, 64, cfg.Review.MemoEntries)
	assert.Equal(t, "both", cfg.Output.ReportFormat)
	assert.Equal(t, "prompts/review.txt", cfg.CustomPrompt)
}

func TestInterpolateEnv(t *testing.T) {
	t.Setenv("GAVEL_TEST_KEY", "sk-secret")
	os.Unsetenv("GAVEL_TEST_UNSET")

	raw := "apiKey: ${GAVEL_TEST_KEY}\nmodel: ${GAVEL_TEST_UNSET:-gpt-4o}\nempty: ${GAVEL_TEST_UNSET}\n"
	got := interpolateEnv(raw)
	assert.Equal(t, "apiKey: sk-secret\nmodel: gpt-4o\nempty: \n", got)
}

func TestInterpolateEnvSetVarBeatsDefault(t *testing.T) {
	t.Setenv("GAVEL_TEST_KEY", "real")
	assert.Equal(t, "real", interpolateEnv("${GAVEL_TEST_KEY:-fallback}"))
}

func TestValidate(t *testing.T) {
	known := func(name string) bool { return name == "openai" || name == "ollama" }

	cfg := Default()
	require.NoError(t, cfg.Validate(known))

	cfg = Default()
	cfg.LLM.Provider = "mystery"
	assert.Error(t, cfg.Validate(known))

	cfg = Default()
	cfg.Cache.TTLDays = 0
	assert.Error(t, cfg.Validate(known))

	cfg = Default()
	cfg.Cache.TTLDays = 31
	assert.Error(t, cfg.Validate(known))

	cfg = Default()
	cfg.Review.Concurrency = 0
	assert.Error(t, cfg.Validate(known))

	cfg = Default()
	cfg.Output.ReportFormat = "pdf"
	assert.Error(t, cfg.Validate(known))
}

func TestExampleParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gavel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(Example()), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 4, cfg.Review.Concurrency)
	assert.Contains(t, cfg.CriticalPaths, "src/auth/")
}
