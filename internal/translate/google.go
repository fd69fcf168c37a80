package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/stocklight/stocklight/internal/telemetry"
)

const (
	defaultGoogleTranslateURL = "https://translation.googleapis.com/language/translate/v2"
	defaultTimeout            = 30 * time.Second
)

// GoogleTranslator implements the Translator interface using the Google
// Cloud Translation v2 REST API.
type GoogleTranslator struct {
	apiKey     string
	sourceLang string
	targetLang string
	apiURL     string
	httpClient *http.Client
	metrics    *telemetry.MetricsCollector
}

// GoogleTranslatorConfig holds configuration for the GoogleTranslator.
type GoogleTranslatorConfig struct {
	APIKey     string
	SourceLang string
	TargetLang string

	// Metrics is the collector translation stats are recorded into. A new
	// collector is created when nil.
	Metrics *telemetry.MetricsCollector
}

// NewGoogleTranslator creates a new GoogleTranslator with the given config.
func NewGoogleTranslator(config GoogleTranslatorConfig) *GoogleTranslator {
	if config.SourceLang == "" {
		config.SourceLang = DefaultSourceLang
	}
	if config.TargetLang == "" {
		config.TargetLang = DefaultTargetLang
	}

	metrics := config.Metrics
	if metrics == nil {
		metrics = telemetry.NewMetricsCollector()
	}

	return &GoogleTranslator{
		apiKey:     config.APIKey,
		sourceLang: config.SourceLang,
		targetLang: config.TargetLang,
		apiURL:     defaultGoogleTranslateURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		metrics:    metrics,
	}
}

// SourceLang returns the source language code.
func (t *GoogleTranslator) SourceLang() string {
	return t.sourceLang
}

// TargetLang returns the target language code.
func (t *GoogleTranslator) TargetLang() string {
	return t.targetLang
}

// googleTranslateRequest is the request body for the translate API
type googleTranslateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
}

// googleTranslateResponse is the response body from the translate API
type googleTranslateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Translate sends the text to the Google Translate API and returns the
// translated text.
func (t *GoogleTranslator) Translate(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", nil
	}
	if t.apiKey == "" {
		return "", fmt.Errorf("google translate API key not set")
	}

	t.metrics.IncrementCounter(telemetry.MetricTranslateCalls, 1)
	start := time.Now()
	defer func() {
		t.metrics.RecordTimer(telemetry.MetricTranslateTime, time.Since(start))
	}()

	requestBody, err := json.Marshal(googleTranslateRequest{
		Q:      text,
		Source: t.sourceLang,
		Target: t.targetLang,
		Format: "text",
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s?key=%s", t.apiURL, t.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(requestBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		t.metrics.IncrementCounter(telemetry.MetricTranslateCallsFailure, 1)
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.metrics.IncrementCounter(telemetry.MetricTranslateCallsFailure, 1)
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var response googleTranslateResponse
	if err := json.Unmarshal(body, &response); err != nil {
		t.metrics.IncrementCounter(telemetry.MetricTranslateCallsFailure, 1)
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		t.metrics.IncrementCounter(telemetry.MetricTranslateCallsFailure, 1)
		if response.Error.Message != "" {
			return "", fmt.Errorf("google translate API error (status %d): %s", resp.StatusCode, response.Error.Message)
		}
		return "", fmt.Errorf("google translate API error (status %d)", resp.StatusCode)
	}

	if len(response.Data.Translations) == 0 {
		t.metrics.IncrementCounter(telemetry.MetricTranslateCallsFailure, 1)
		return "", fmt.Errorf("no translations in response")
	}

	return response.Data.Translations[0].TranslatedText, nil
}
