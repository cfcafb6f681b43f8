package llm

import (
	"context"
	"encoding/json"
)

// Provider abstracts the AI backend used for quiz generation and the
// study assistant chat.
type Provider interface {
	// Generate sends a prompt and returns the model's output. When the
	// request carries a Schema, the returned Content is JSON validated
	// against it; otherwise Content is the raw text.
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

type Request struct {
	// System sets the model's role and constraints.
	System string
	// Messages is the conversation so far. Quiz generation sends a single
	// user message; chat sends the whole session history.
	Messages []Message
	// Schema, when set, requests structured JSON output conforming to it.
	Schema *Schema
	// MaxTokens caps the response length.
	MaxTokens int
	// Temperature in [0,1]; zero means deterministic.
	Temperature float64
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// Schema describes the JSON structure expected from the model.
type Schema struct {
	// Name identifies the schema (tool name for Anthropic, schema name
	// for OpenAI).
	Name        string
	Description string
	// Definition is the JSON Schema document as a map.
	Definition map[string]any
}

type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string
	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
