// Package llm provides the model clients used by the analyzer and reviewer.
//
// Supported providers: OpenAI, Anthropic, Zhipu, MiniMax, Qwen, DeepSeek, and
// Ollama for local models. Every provider except Anthropic speaks the
// OpenAI-compatible chat completions protocol, so a single client covers
// them with different base URLs.
//
// All clients share a retry helper with exponential back-off; only rate-limit
// responses are retried, authentication and server errors fail immediately.
// [Memoized] wraps a client with an in-process LRU so repeated prompts within
// one run hit the model once.
//
// Use [New] to obtain a [Client] from provider [Options].
package llm
