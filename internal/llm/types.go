package llm

import (
	"context"
	"errors"
	"fmt"
)

// represents different LLM providers
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// normalizes and validates a provider name, defaulting to openai when empty
func ParseProvider(s string) (Provider, error) {
	switch Provider(s) {
	case "", ProviderOpenAI:
		return ProviderOpenAI, nil
	case ProviderGemini:
		return ProviderGemini, nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnknownProvider, s)
}

var ErrUnknownProvider = errors.New("unknown llm provider")

// completes a single prompt against one provider
type Backend interface {
	Complete(ctx context.Context, req Request) (*Response, error)
	Model() string
	Provider() Provider
}

// a chat turn; Role is "user" or "assistant"
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// describes one completion call
type Request struct {
	System      string
	Messages    []Message
	Temperature float64
	MaxTokens   int
	JSON        bool // ask the provider for a JSON object response
}

type Response struct {
	Text         string
	InputTokens  int
	OutputTokens int
}

// holds configuration for a single backend
type ClientConfig struct {
	APIKey  string
	Model   string
	BaseURL string // overrides the provider endpoint, used by tests

	// requests per second and burst for the client-side limiter
	RateLimit float64
	Burst     int
}

// returned for non-2xx provider responses
type APIError struct {
	Provider   Provider
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API request failed with status %d: %s", e.Provider, e.StatusCode, e.Message)
}
