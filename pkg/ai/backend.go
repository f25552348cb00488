package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/johnquangdev/meeting-insights/pkg/config"
)

// CompletionRequest is one prompt submitted to a model backend
type CompletionRequest struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Backend submits a prompt to a language model and returns the raw generated text.
// Implementations hold no per-request state and must be safe for concurrent use.
type Backend interface {
	Name() string
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// StatusError is a non-success reply from a model backend
type StatusError struct {
	Backend    string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Backend, e.StatusCode, strings.TrimSpace(e.Body))
}

// NewBackend builds the backend selected by cfg.Provider
func NewBackend(ctx context.Context, cfg *config.LLMConfig) (Backend, error) {
	switch cfg.Provider {
	case config.ProviderGroq:
		return NewGroqClient(cfg), nil
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg), nil
	case config.ProviderAnthropic:
		return NewAnthropicClient(cfg), nil
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg)
	case config.ProviderTGI:
		return NewTGIClient(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", cfg.Provider)
	}
}
