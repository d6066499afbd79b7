package domain

import "context"

// Role identifies the author of a chat message.
type Role string

const (
	// RoleUser marks a message authored by the requesting user.
	RoleUser Role = "user"
	// RoleAssistant marks a message authored by the model.
	RoleAssistant Role = "assistant"
)

// Message is a single turn in a chat conversation.
type Message struct {
	Role    Role
	Content string
}

// GenerationRequest is a text-generation call. Zero MaxTokens or Temperature
// fall back to the provider defaults.
type GenerationRequest struct {
	System      string
	Messages    []Message
	MaxTokens   int
	Temperature float32
}

// Generator produces text completions.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}
