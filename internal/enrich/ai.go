package enrich

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/stocklight/stocklight/internal/enrich/providers"
	"github.com/stocklight/stocklight/internal/telemetry"
)

const (
	// Default settings
	DefaultTimeout   = 30 * time.Second
	DefaultMaxTokens = 512
)

// Errors
var (
	ErrEnrichmentFailed = errors.New("enrichment failed")
	ErrConfigError      = errors.New("configuration error")
)

// AIEnricher is an implementation of the Enricher interface that uses LLMs
// to classify products, generate descriptions and parse receipts. When the
// primary provider fails, configured fallback providers are tried in order.
type AIEnricher struct {
	provider            providers.LLMProvider
	fallbackProviders   []providers.LLMProvider
	providerFactory     *providers.ProviderFactory
	timeout             time.Duration
	maxTokens           int
	providerInitialized bool
	metrics             *telemetry.MetricsCollector
	mu                  sync.RWMutex

	config *AIEnricherConfig
}

// AIEnricherConfig holds configuration for the AIEnricher
type AIEnricherConfig struct {
	ProviderName      string
	ModelID           string
	APIKey            string
	Timeout           time.Duration
	MaxTokens         int
	FallbackProviders []struct {
		Name    string
		ModelID string
		APIKey  string
	}

	// Metrics is the collector enrichment stats are recorded into. A new
	// collector is created when nil.
	Metrics *telemetry.MetricsCollector
}

// NewAIEnricher creates a new AIEnricher with the specified provider and settings
func NewAIEnricher(config *AIEnricherConfig) *AIEnricher {
	if config == nil {
		config = &AIEnricherConfig{}
	}

	// Set defaults if not specified
	if config.ProviderName == "" {
		config.ProviderName = providers.ProviderAnthropic
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = DefaultMaxTokens
	}

	metrics := config.Metrics
	if metrics == nil {
		metrics = telemetry.NewMetricsCollector()
	}

	return &AIEnricher{
		timeout:   config.Timeout,
		maxTokens: config.MaxTokens,
		metrics:   metrics,
		config:    config,
	}
}

// Initialize sets up the enricher with required configuration
func (e *AIEnricher) Initialize() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	// If already initialized, do nothing
	if e.providerInitialized {
		return nil
	}

	if e.config.APIKey == "" {
		return fmt.Errorf("%w: missing API key for provider %s", ErrConfigError, e.config.ProviderName)
	}

	// Create provider configs
	providerConfigs := make(map[string]providers.Config)

	// Add main provider
	providerConfigs[e.config.ProviderName] = providers.Config{
		ModelID: e.config.ModelID,
		APIKey:  e.config.APIKey,
	}

	// Add fallback providers
	var preferenceOrder []string
	for _, fallbackConfig := range e.config.FallbackProviders {
		if fallbackConfig.Name == e.config.ProviderName || fallbackConfig.APIKey == "" {
			continue
		}
		providerConfigs[fallbackConfig.Name] = providers.Config{
			ModelID: fallbackConfig.ModelID,
			APIKey:  fallbackConfig.APIKey,
		}
		preferenceOrder = append(preferenceOrder, fallbackConfig.Name)
	}

	e.providerFactory = providers.NewProviderFactory(providerConfigs)

	// Create primary provider
	primaryProvider, err := e.providerFactory.GetProvider(e.config.ProviderName)
	if err != nil {
		return fmt.Errorf("failed to create primary provider: %w", err)
	}
	e.provider = primaryProvider

	// Create fallback provider chain, excluding the primary
	for _, candidate := range e.providerFactory.GetProviderChain(preferenceOrder) {
		if candidate.Name() != e.config.ProviderName {
			e.fallbackProviders = append(e.fallbackProviders, candidate)
		}
	}

	e.providerInitialized = true
	return nil
}

// Classify returns a category name for the given product name.
func (e *AIEnricher) Classify(ctx context.Context, productName string) (string, error) {
	prompt := fmt.Sprintf(classifyPromptTemplate, productName)

	response, err := e.complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	// Models occasionally return trailing explanation despite the prompt;
	// the category is always the first line.
	category, _, _ := strings.Cut(strings.TrimSpace(response), "\n")
	category = strings.TrimSpace(category)
	if category == "" {
		return "", fmt.Errorf("%w: empty classification response", ErrEnrichmentFailed)
	}

	return category, nil
}

// Describe returns a one-sentence description of the given product name.
func (e *AIEnricher) Describe(ctx context.Context, productName string) (string, error) {
	prompt := fmt.Sprintf(describePromptTemplate, productName)

	response, err := e.complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	description := strings.TrimSpace(response)
	if description == "" {
		return "", fmt.Errorf("%w: empty description response", ErrEnrichmentFailed)
	}

	return description, nil
}

// ExtractReceipt parses receipt text into structured line items.
func (e *AIEnricher) ExtractReceipt(ctx context.Context, receiptText string) (*Receipt, error) {
	response, err := e.complete(ctx, receiptPromptPrefix+receiptText)
	if err != nil {
		return nil, err
	}

	return parseReceiptJSON(response)
}

// complete sends the prompt to the primary provider, falling back through
// the configured chain when it fails.
func (e *AIEnricher) complete(ctx context.Context, prompt string) (string, error) {
	e.mu.RLock()
	initialized := e.providerInitialized
	e.mu.RUnlock()

	if !initialized {
		if err := e.Initialize(); err != nil {
			return "", fmt.Errorf("failed to initialize enricher: %w", err)
		}
	}

	// Try the primary provider first
	response, err := e.completeWith(ctx, e.provider, prompt)
	if err == nil {
		return response, nil
	}

	lastErr := err
	e.metrics.IncrementCounter(telemetry.MetricEnrichFallbackAttempts, 1)

	for _, fallbackProvider := range e.fallbackProviders {
		response, err = e.completeWith(ctx, fallbackProvider, prompt)
		if err == nil {
			e.metrics.IncrementCounter(telemetry.MetricEnrichFallbackSuccess, 1)
			return response, nil
		}
		lastErr = err
	}

	return "", fmt.Errorf("%w: %v", ErrEnrichmentFailed, lastErr)
}

// completeWith makes a single call to the given provider with the
// configured timeout, recording call and response-time metrics.
func (e *AIEnricher) completeWith(ctx context.Context, provider providers.LLMProvider, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	if counter := enrichCallMetric(provider.Name()); counter != "" {
		e.metrics.IncrementCounter(counter, 1)
	}

	start := time.Now()
	response, err := provider.Complete(ctx, prompt, e.maxTokens)

	if timer := enrichTimeMetric(provider.Name()); timer != "" {
		e.metrics.RecordTimer(timer, time.Since(start))
	}

	if err != nil {
		e.metrics.IncrementCounter(telemetry.MetricEnrichCallsFailure, 1)
		return "", err
	}

	e.metrics.IncrementCounter(telemetry.MetricEnrichCallsSuccess, 1)
	return response, nil
}

// enrichCallMetric maps a provider name to its API-call counter.
func enrichCallMetric(providerName string) string {
	switch providerName {
	case providers.ProviderAnthropic:
		return telemetry.MetricEnrichCallsAnthropic
	case providers.ProviderOpenAI:
		return telemetry.MetricEnrichCallsOpenAI
	case providers.ProviderGoogle:
		return telemetry.MetricEnrichCallsGoogle
	case providers.ProviderXAI:
		return telemetry.MetricEnrichCallsXAI
	default:
		return ""
	}
}

// enrichTimeMetric maps a provider name to its response-time timer.
func enrichTimeMetric(providerName string) string {
	switch providerName {
	case providers.ProviderAnthropic:
		return telemetry.MetricEnrichTimeAnthropic
	case providers.ProviderOpenAI:
		return telemetry.MetricEnrichTimeOpenAI
	case providers.ProviderGoogle:
		return telemetry.MetricEnrichTimeGoogle
	case providers.ProviderXAI:
		return telemetry.MetricEnrichTimeXAI
	default:
		return ""
	}
}

// GetMetrics returns the metrics collector for this enricher
func (e *AIEnricher) GetMetrics() *telemetry.MetricsCollector {
	return e.metrics
}

// ProviderNames returns the names of the primary provider followed by the
// fallback chain. The enricher must be initialized first.
func (e *AIEnricher) ProviderNames() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var names []string
	if e.provider != nil {
		names = append(names, e.provider.Name())
	}
	for _, provider := range e.fallbackProviders {
		names = append(names, provider.Name())
	}
	return names
}
