// Package llm provides a unified interface for the hosted LLM backends used
// to score candidates.
package llm

import (
	"context"
	"errors"
	"time"
)

// ErrRateLimited is wrapped by providers when the backend returns HTTP 429.
// Callers retry on it with backoff; every other error is terminal for the
// request.
var ErrRateLimited = errors.New("llm: rate limited")

// Role represents the role of a message sender.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Message represents a chat message.
type Message struct {
	Role    Role
	Content string
}

// Usage tracks token consumption.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Request represents a completion request.
type Request struct {
	Messages    []Message
	MaxTokens   int
	Temperature float64
	JSONOnly    bool // ask the backend for a JSON-object response
}

// Response represents the completion response.
type Response struct {
	Content string
	Usage   Usage
}

// Provider is the abstraction over LLM backends.
type Provider interface {
	// Complete sends a completion request.
	Complete(ctx context.Context, req Request) (Response, error)

	// Name returns the provider identifier.
	Name() string
}

// ProviderConfig holds common configuration for providers.
type ProviderConfig struct {
	APIKey  string
	BaseURL string // for OpenRouter or custom endpoints
	Model   string
	Timeout time.Duration
}

// DefaultProviderConfig returns sensible defaults.
func DefaultProviderConfig() ProviderConfig {
	return ProviderConfig{
		Timeout: 120 * time.Second,
	}
}
