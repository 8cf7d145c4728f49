// Package llm is the boundary to the external content-generation
// capability.
//
// A Provider turns a prompt plus an optional JSON schema into structured
// JSON. Concrete providers wrap the Gemini, OpenAI and Anthropic SDKs;
// MockProvider serves canned responses for tests and offline runs. The
// package knows nothing about MCQs or lesson plans: the content pipeline
// owns prompts, schemas and conversion.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is the generation capability consumed by the content pipeline.
type Provider interface {
	// Generate sends the request and returns the model's output. When
	// req.Schema is set the provider requests structured output and the
	// returned Content has already been validated against the schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier the provider is configured for.
	ModelID() string
}

// Request describes one generation call.
type Request struct {
	// System scopes the model to its role and constraints.
	System string

	// Messages is the conversation; single-turn generation sends one
	// user message.
	Messages []Message

	// Schema, when set, is the JSON Schema the response must satisfy.
	Schema *Schema

	MaxTokens   int
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

// Schema is a named JSON Schema definition.
type Schema struct {
	// Name identifies the schema, kebab-case (e.g. "mcq-set").
	Name string

	Description string

	// Definition is the JSON Schema as a map.
	Definition map[string]any
}

// Response is the provider output.
type Response struct {
	// Content is the validated JSON object when a schema was requested,
	// otherwise the raw text.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage reports token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
