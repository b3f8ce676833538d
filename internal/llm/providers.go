package llm

import (
	"fmt"
	"sort"
)

// Options describes the model backend to construct.
type Options struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
}

// ProviderInfo describes one supported backend.
type ProviderInfo struct {
	Name         string
	DefaultModel string
	BaseURL      string
	NeedsAPIKey  bool
}

const (
	kindOpenAICompat = iota
	kindAnthropic
)

type providerSpec struct {
	kind         int
	defaultModel string
	baseURL      string
	needsAPIKey  bool
}

var providerTable = map[string]providerSpec{
	"openai":    {kindOpenAICompat, "gpt-4o", "https://api.openai.com/v1", true},
	"anthropic": {kindAnthropic, "claude-sonnet-4-20250514", "https://api.anthropic.com/v1", true},
	"zhipu":     {kindOpenAICompat, "glm-4-flash", "https://open.bigmodel.cn/api/paas/v4", true},
	"minimax":   {kindOpenAICompat, "abab6.5s-chat", "https://api.minimax.chat/v1", true},
	"qwen":      {kindOpenAICompat, "qwen-plus", "https://dashscope.aliyuncs.com/compatible-mode/v1", true},
	"deepseek":  {kindOpenAICompat, "deepseek-chat", "https://api.deepseek.com/v1", true},
	"ollama":    {kindOpenAICompat, "llama3.2", "http://localhost:11434/v1", false},
}

// New constructs a client for the named provider. The provider name must be
// one of the entries reported by Providers.
func New(opts Options) (Client, error) {
	spec, ok := providerTable[opts.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q", opts.Provider)
	}
	if spec.needsAPIKey && opts.APIKey == "" {
		return nil, &authError{provider: opts.Provider, message: "API key not configured"}
	}
	model := opts.Model
	if model == "" {
		model = spec.defaultModel
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = spec.baseURL
	}
	switch spec.kind {
	case kindAnthropic:
		return newAnthropicClient(opts.Provider, opts.APIKey, model, baseURL, opts.Temperature), nil
	default:
		return newOpenAIClient(opts.Provider, opts.APIKey, model, baseURL, opts.Temperature), nil
	}
}

// Providers returns the supported backends sorted by name.
func Providers() []ProviderInfo {
	infos := make([]ProviderInfo, 0, len(providerTable))
	for name, spec := range providerTable {
		infos = append(infos, ProviderInfo{
			Name:         name,
			DefaultModel: spec.defaultModel,
			BaseURL:      spec.baseURL,
			NeedsAPIKey:  spec.needsAPIKey,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}
