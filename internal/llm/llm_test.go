package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnknownProvider(t *testing.T) {
	_, err := New(Options{Provider: "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(Options{Provider: "openai"})
	require.Error(t, err)
	assert.True(t, IsAuthError(err))
}

func TestNewOllamaNeedsNoKey(t *testing.T) {
	client, err := New(Options{Provider: "ollama"})
	require.NoError(t, err)
	assert.Equal(t, "ollama", client.Name())
}

func TestProvidersTable(t *testing.T) {
	infos := Providers()
	require.Len(t, infos, 7)

	byName := map[string]ProviderInfo{}
	for _, info := range infos {
		byName[info.Name] = info
	}
	assert.Equal(t, "gpt-4o", byName["openai"].DefaultModel)
	assert.Equal(t, "claude-sonnet-4-20250514", byName["anthropic"].DefaultModel)
	assert.Equal(t, "glm-4-flash", byName["zhipu"].DefaultModel)
	assert.Equal(t, "https://open.bigmodel.cn/api/paas/v4", byName["zhipu"].BaseURL)
	assert.Equal(t, "qwen-plus", byName["qwen"].DefaultModel)
	assert.Equal(t, "deepseek-chat", byName["deepseek"].DefaultModel)
	assert.False(t, byName["ollama"].NeedsAPIKey)
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Risk string `json:"risk_level"`
	}

	require.NoError(t, DecodeJSON(`{"risk_level": "high"}`, &v))
	assert.Equal(t, "high", v.Risk)

	fenced := "```json\n{\"risk_level\": \"medium\"}\n```"
	require.NoError(t, DecodeJSON(fenced, &v))
	assert.Equal(t, "medium", v.Risk)

	bare := "```\n{\"risk_level\": \"low\"}\n```"
	require.NoError(t, DecodeJSON(bare, &v))
	assert.Equal(t, "low", v.Risk)

	assert.Error(t, DecodeJSON("not json at all", &v))
}

func TestRetryOnlyRateLimit(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), 2, func() error {
		calls++
		return &authError{provider: "openai", message: "bad key"}
	})
	require.Error(t, err)
	assert.True(t, IsAuthError(err))
	assert.Equal(t, 1, calls, "auth errors must not be retried")

	calls = 0
	err = retryWithBackoff(context.Background(), 2, func() error {
		calls++
		return &serverError{provider: "openai", status: 500, body: "boom"}
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls, "server errors must not be retried")

	calls = 0
	err = retryWithBackoff(context.Background(), 2, func() error {
		calls++
		if calls < 2 {
			return &rateLimitError{provider: "openai"}
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestOpenAIClientComplete(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"{\"risk_level\":\"low\"}"}}],"usage":{"total_tokens":42}}`)
	}))
	defer server.Close()

	client := newOpenAIClient("openai", "sk-test", "gpt-4o", server.URL, 0)
	resp, err := client.Complete(context.Background(), Request{System: "sys", User: "usr"})
	require.NoError(t, err)
	assert.Equal(t, `{"risk_level":"low"}`, resp.Content)
	assert.Equal(t, 42, resp.TokensUsed)
	assert.Equal(t, "Bearer sk-test", gotAuth)
}

func TestOpenAIClientAuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newOpenAIClient("deepseek", "bad", "deepseek-chat", server.URL, 0)
	_, err := client.Complete(context.Background(), Request{User: "hi"})
	require.Error(t, err)
	assert.True(t, IsAuthError(err))
}

func TestAnthropicClientComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicAPIVersion, r.Header.Get("anthropic-version"))
		fmt.Fprint(w, `{"content":[{"type":"text","text":"hello"}],"usage":{"input_tokens":10,"output_tokens":5}}`)
	}))
	defer server.Close()

	client := newAnthropicClient("anthropic", "key", "claude-sonnet-4-20250514", server.URL, 0)
	resp, err := client.Complete(context.Background(), Request{User: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Content)
	assert.Equal(t, 15, resp.TokensUsed)
}

type countingClient struct {
	calls int
	resp  Response
	err   error
}

func (c *countingClient) Name() string { return "stub" }

func (c *countingClient) Complete(ctx context.Context, req Request) (Response, error) {
	c.calls++
	return c.resp, c.err
}

func TestMemoizedCachesResponses(t *testing.T) {
	stub := &countingClient{resp: Response{Content: "ok", TokensUsed: 7}}
	client := Memoized(stub, 16)

	req := Request{System: "s", User: "u"}
	for range 3 {
		resp, err := client.Complete(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Content)
	}
	assert.Equal(t, 1, stub.calls)

	_, err := client.Complete(context.Background(), Request{System: "s", User: "different"})
	require.NoError(t, err)
	assert.Equal(t, 2, stub.calls)
}

func TestMemoizedDoesNotCacheErrors(t *testing.T) {
	stub := &countingClient{err: errors.New("transient")}
	client := Memoized(stub, 16)

	_, err := client.Complete(context.Background(), Request{User: "u"})
	require.Error(t, err)
	_, err = client.Complete(context.Background(), Request{User: "u"})
	require.Error(t, err)
	assert.Equal(t, 2, stub.calls)
}

func TestMemoizedZeroEntriesPassthrough(t *testing.T) {
	stub := &countingClient{resp: Response{Content: "ok"}}
	assert.Equal(t, Client(stub), Memoized(stub, 0))
}
