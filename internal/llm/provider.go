// Package llm turns extracted judgment text into structured case briefs via
// an external completion service, and cleans the service's untrusted free-text
// output into a renderable form.
package llm

import (
	"context"
	"time"

	"github.com/ppiankov/casebrief/internal/model"
)

// Provider defines the interface for completion-service backends
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete performs one synchronous completion request
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// CompletionRequest contains the input for one completion call
type CompletionRequest struct {
	// System is the system-role instruction
	System string

	// Prompt is the user-role content
	Prompt string

	// Model overrides the configured model for this request (optional)
	Model string

	// MaxTokens limits the response length
	MaxTokens int

	// Temperature controls sampling randomness
	Temperature float32
}

// CompletionResponse contains the completion output
type CompletionResponse struct {
	// Text is the raw completion text. The service may return anything,
	// including instruction-violating text; callers must treat it as untrusted.
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds completion-service configuration
type Config struct {
	// Provider name: "openai" (any OpenAI-compatible endpoint), "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for the service
	APIKey string

	// BaseURL for custom endpoints (OpenRouter, Ollama, proxies)
	BaseURL string

	// Timeout for one request
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Retries is the number of additional attempts after a failure
	Retries int

	// RetryBackoff is the fixed delay between attempts
	RetryBackoff time.Duration

	// PromptPrefixBytes bounds how much judgment text goes into the prompt
	PromptPrefixBytes int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:          "openai",
		BaseURL:           "https://openrouter.ai/api/v1",
		Timeout:           60,
		MaxTokens:         2000,
		Retries:           2,
		RetryBackoff:      2 * time.Second,
		PromptPrefixBytes: 6000,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:          mc.Provider,
		Model:             mc.Model,
		APIKey:            mc.APIKey,
		BaseURL:           mc.BaseURL,
		Timeout:           mc.Timeout,
		MaxTokens:         mc.MaxTokens,
		Retries:           mc.Retries,
		RetryBackoff:      mc.RetryBackoff,
		PromptPrefixBytes: mc.PromptPrefixBytes,
	}
}
