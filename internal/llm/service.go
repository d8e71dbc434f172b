package llm

import (
	"context"
)

// Service defines the interface for language model completions. Complete
// sends one prompt and returns the raw model text; callers own any parsing
// of structured responses.
type Service interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config represents language model client configuration
type Config struct {
	Provider    string  `json:"provider"` // openai, anthropic, ollama
	Model       string  `json:"model"`
	APIKey      string  `json:"api_key,omitempty"`
	BaseURL     string  `json:"base_url,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

// Provider constants for the supported LLM providers
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
	ProviderLocal     = "local"
)
