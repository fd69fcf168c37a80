package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	anthropicAPIURL = "https://api.anthropic.com/v1/messages"
)

// AnthropicProvider implements the LLMProvider interface for Anthropic's Claude
type AnthropicProvider struct {
	Config
	httpClient *http.Client
	apiURL     string
	version    string
}

// AnthropicMessage represents the request structure for Anthropic's API
type AnthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AnthropicRequest represents a request to Anthropic's API
type AnthropicRequest struct {
	Model     string             `json:"model"`
	Messages  []AnthropicMessage `json:"messages"`
	MaxTokens int                `json:"max_tokens"`
}

// AnthropicResponse represents a response from Anthropic's API
type AnthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewAnthropicProvider creates a new instance of the Anthropic provider
func NewAnthropicProvider(config Config) *AnthropicProvider {
	return &AnthropicProvider{
		Config: config,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		apiURL:  anthropicAPIURL,
		version: "2023-06-01",
	}
}

// Name returns the provider name
func (p *AnthropicProvider) Name() string {
	return ProviderAnthropic
}

// Complete implements the LLMProvider interface for Anthropic
func (p *AnthropicProvider) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if p.APIKey == "" {
		return "", fmt.Errorf("Anthropic API key not provided")
	}

	model := p.ModelID
	if model == "" {
		model = "claude-3-haiku-20240307"
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	reqBody := AnthropicRequest{
		Model: model,
		Messages: []AnthropicMessage{
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens: maxTokens,
	}

	reqJSON, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %v", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		p.apiURL,
		strings.NewReader(string(reqJSON)),
	)
	if err != nil {
		return "", fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", p.APIKey)
	req.Header.Set("Anthropic-Version", p.version)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error sending request to Anthropic API: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response body: %v", err)
	}

	var anthResponse AnthropicResponse
	if err := json.Unmarshal(respBody, &anthResponse); err != nil {
		return "", fmt.Errorf("error unmarshaling response: %v", err)
	}

	if anthResponse.Error != nil {
		return "", fmt.Errorf("Anthropic API error: %s: %s",
			anthResponse.Error.Type, anthResponse.Error.Message)
	}

	if len(anthResponse.Content) == 0 || anthResponse.Content[0].Text == "" {
		return "", fmt.Errorf("empty response from Anthropic API")
	}

	return anthResponse.Content[0].Text, nil
}
