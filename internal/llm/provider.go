package llm

import (
	"context"
	"encoding/json"
)

// Provider is the abstraction over a generative-text backend.
// The tutor gateway is its only consumer; it sends a Request and
// receives text or schema-constrained JSON back.
type Provider interface {
	// Generate sends one request to the backend. When the request carries
	// a Schema, the returned Content is JSON validated against it. When it
	// does not, Content holds the raw text reply.
	//
	// Providers are stateless between calls: multi-turn conversations are
	// expressed by passing the full history in Messages on every call.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured with.
	ModelID() string
}

// Request describes a single call to the backend.
type Request struct {
	// System is the system instruction. For chat it carries the tutor
	// persona; attached per request, never repeated inside Messages.
	System string

	// Messages is the ordered conversation. Single-turn requests
	// (exercise generation, answer checking) contain one user message.
	Messages []Message

	// Schema, when set, requests structured JSON output conforming to it.
	Schema *Schema

	// MaxTokens bounds the response length.
	MaxTokens int

	// Temperature controls randomness, 0.0-1.0. Zero means deterministic.
	Temperature float64
}

// Message is one turn of a conversation as the backend sees it.
type Message struct {
	Role    Role
	Content string
}

// Role tags a message's author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema describes the JSON structure expected from the backend.
type Schema struct {
	// Name identifies the schema (tool name for Anthropic, schema name
	// for OpenAI). Kebab-case, e.g. "practice-exercise".
	Name string

	// Description tells the backend what the schema represents.
	Description string

	// Definition is the JSON Schema as a map.
	Definition map[string]any
}

// Response is the backend's output.
type Response struct {
	// Content is validated JSON when the request carried a Schema,
	// otherwise the raw text reply.
	Content json.RawMessage

	// Usage reports token consumption.
	Usage Usage

	// Model is the model that actually served the request.
	Model string
}

// Usage tracks token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
