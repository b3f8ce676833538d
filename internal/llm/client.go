package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Request contains the prompts sent to a model for one invocation.
type Request struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}

// Response contains the raw model output.
type Response struct {
	Content    string
	TokensUsed int
}

// Client is the model-invocation abstraction injected into the analyzer and
// the file reviewer.
type Client interface {
	Complete(ctx context.Context, req Request) (Response, error)
	Name() string
}

// DecodeJSON extracts the JSON document from a model response and unmarshals
// it into v. Markdown code fences around the document are stripped first.
func DecodeJSON(content string, v any) error {
	content = stripFences(content)
	if err := json.Unmarshal([]byte(content), v); err != nil {
		return fmt.Errorf("invalid JSON in model response: %w", err)
	}
	return nil
}

func stripFences(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	lines := strings.Split(content, "\n")
	if len(lines) < 2 {
		return content
	}
	end := len(lines)
	if strings.TrimSpace(lines[end-1]) == "```" {
		end--
	}
	return strings.Join(lines[1:end], "\n")
}
