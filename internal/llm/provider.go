package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Provider is the core abstraction over a generative-text service.
// Every study material and tutor reply in Zambezi goes through one.
type Provider interface {
	// Generate sends a prompt and returns the provider's output. When the
	// request carries a Schema, Content is JSON already validated against
	// it; otherwise Content holds the raw text reply.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes one generation call.
type Request struct {
	// System is the system instruction (tutor persona, syllabus rules).
	System string

	// Messages is the conversation in order. Single-shot generation sends
	// one user message; tutor chat sends every prior turn followed by the
	// new user message.
	Messages []Message

	// Schema constrains the response to JSON of this shape. Nil means
	// free text (study notes, chat replies).
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Zero leaves the provider default.
	Temperature float64
}

// Message is a single conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the provider.
type Schema struct {
	// Name identifies the schema, kebab-case (e.g. "quiz-set"). It doubles
	// as the compiled-schema cache key.
	Name string

	// Description is sent to providers that accept one.
	Description string

	// Definition is the JSON Schema document.
	Definition map[string]any
}

// Response holds a provider's output.
type Response struct {
	// Content is validated JSON for schema requests, raw text otherwise.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Text returns the response content as trimmed text.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(string(r.Content))
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
