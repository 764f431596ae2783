package llm

import (
	"fmt"
	"strings"
)

// NewProvider creates a completion-service provider based on configuration
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai", "openrouter":
		return NewOpenAIProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		// No provider configured - return nil (synthesis disabled)
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown completion provider: %s (supported: openai, openrouter, ollama)", config.Provider)
	}
}
