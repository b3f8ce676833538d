package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks for the config file when no path is given.
const DefaultPath = ".gavel.yaml"

// Config represents the gavel configuration.
type Config struct {
	LLM             LLMConfig     `yaml:"llm"`
	CriticalPaths   []string      `yaml:"criticalPaths"`
	ExcludePatterns []string      `yaml:"excludePatterns"`
	Cache           CacheConfig   `yaml:"cache"`
	Review          ReviewConfig  `yaml:"review"`
	Output          OutputConfig  `yaml:"output"`
	Privacy         PrivacyConfig `yaml:"privacy"`
	CustomPrompt    string        `yaml:"customPrompt"`
}

// LLMConfig selects the model backend.
type LLMConfig struct {
	Provider    string  `yaml:"provider"`
	APIKey      string  `yaml:"apiKey"`
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"baseUrl"`
	Temperature float64 `yaml:"temperature"`
}

// CacheConfig controls the project context cache.
type CacheConfig struct {
	TTLDays      int    `yaml:"ttl"`
	ForceRefresh bool   `yaml:"forceRefresh"`
	Dir          string `yaml:"dir"`
}

// ReviewConfig tunes how files are reviewed.
type ReviewConfig struct {
	Concurrency int `yaml:"concurrency"`
	MemoEntries int `yaml:"memoEntries"`
}

// OutputConfig controls report generation.
type OutputConfig struct {
	PRComment    bool   `yaml:"prComment"`
	ReportPath   string `yaml:"reportPath"`
	ReportFormat string `yaml:"reportFormat"`
}

// PrivacyConfig controls redaction of the diffs sent to the model.
type PrivacyConfig struct {
	RedactSecrets bool `yaml:"redactSecrets"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		LLM: LLMConfig{
			Provider: "openai",
		},
		Cache: CacheConfig{
			TTLDays: 7,
			Dir:     ".gavel/cache",
		},
		Review: ReviewConfig{
			Concurrency: 1,
			MemoEntries: 128,
		},
		Output: OutputConfig{
			PRComment:    true,
			ReportPath:   ".gavel/reports",
			ReportFormat: "markdown",
		},
		Privacy: PrivacyConfig{
			RedactSecrets: true,
		},
	}
}

// Load reads the YAML config at path, interpolates environment variables,
// and unmarshals over the defaults. A missing file at the default path is
// not an error; a missing file at an explicit path is.
func Load(path string) (Config, error) {
	explicit := path != ""
	if path == "" {
		path = DefaultPath
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	raw := interpolateEnv(string(data))
	if err := yaml.Unmarshal([]byte(raw), &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// interpolateEnv replaces ${VAR} and ${VAR:-default} in the raw YAML text.
// Unset variables without a default become empty strings.
func interpolateEnv(raw string) string {
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		parts := envVarPattern.FindStringSubmatch(match)
		if v, ok := os.LookupEnv(parts[1]); ok {
			return v
		}
		return parts[2]
	})
}

// Validate checks the effective configuration before any model call is made.
// knownProvider lets the caller supply the provider registry without this
// package importing it.
func (c *Config) Validate(knownProvider func(string) bool) error {
	if c.LLM.Provider == "" {
		return fmt.Errorf("llm.provider is required")
	}
	if knownProvider != nil && !knownProvider(c.LLM.Provider) {
		return fmt.Errorf("unknown llm.provider %q", c.LLM.Provider)
	}
	if c.Cache.TTLDays < 1 || c.Cache.TTLDays > 30 {
		return fmt.Errorf("cache.ttl must be between 1 and 30 days, got %d", c.Cache.TTLDays)
	}
	if c.Review.Concurrency < 1 {
		return fmt.Errorf("review.concurrency must be at least 1, got %d", c.Review.Concurrency)
	}
	switch c.Output.ReportFormat {
	case "markdown", "json", "both":
	default:
		return fmt.Errorf("output.reportFormat must be markdown, json, or both, got %q", c.Output.ReportFormat)
	}
	return nil
}

// Example returns a starter config file.
func Example() string {
	return strings.TrimLeft(`
llm:
  provider: openai
  apiKey: ${OPENAI_API_KEY}
  # model: gpt-4o
  # baseUrl: https://api.openai.com/v1
  temperature: 0.2

criticalPaths:
  - src/auth/
  - src/payment/

excludePatterns:
  - "*.lock"
  - "dist/**"
  - "**/*.min.js"

cache:
  ttl: 7
  forceRefresh: false
  dir: .gavel/cache

review:
  concurrency: 4
  memoEntries: 128

output:
  prComment: true
  reportPath: .gavel/reports
  reportFormat: markdown

privacy:
  redactSecrets: true
`, "\n")
}
