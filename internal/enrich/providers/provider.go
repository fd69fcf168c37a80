// Package providers contains implementations of different LLM providers
// used by the product-enrichment subsystem.
package providers

import (
	"context"
	"time"
)

const (
	// Provider constants
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderGoogle    = "google"
	ProviderXAI       = "xai"

	// Default settings
	DefaultTimeout   = 30 * time.Second
	DefaultMaxTokens = 512
)

// LLMProvider defines the interface for different LLM service providers
type LLMProvider interface {
	// Complete sends a prompt to the model and returns its text response.
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)

	// Name returns the provider name
	Name() string
}

// Config holds common configuration for LLM providers
type Config struct {
	APIKey  string
	ModelID string
}
