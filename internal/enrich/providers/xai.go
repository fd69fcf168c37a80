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
	xaiAPIURL = "https://api.x.ai/v1/chat/completions"
)

// XAIProvider implements the LLMProvider interface for xAI's Grok models.
// The xAI API is compatible with OpenAI's chat completion format.
type XAIProvider struct {
	Config
	httpClient *http.Client
	apiURL     string
}

// XAIRequest represents a request to xAI's API
type XAIRequest struct {
	Model     string          `json:"model"`
	Messages  []OpenAIMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens"`
}

// XAIResponse represents a response from xAI's API
type XAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewXAIProvider creates a new instance of the xAI provider
func NewXAIProvider(config Config) *XAIProvider {
	return &XAIProvider{
		Config: config,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		apiURL: xaiAPIURL,
	}
}

// Name returns the provider name
func (p *XAIProvider) Name() string {
	return ProviderXAI
}

// Complete implements the LLMProvider interface for xAI
func (p *XAIProvider) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if p.APIKey == "" {
		return "", fmt.Errorf("xAI API key not provided")
	}

	model := p.ModelID
	if model == "" {
		model = "grok-2-latest"
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	reqBody := XAIRequest{
		Model: model,
		Messages: []OpenAIMessage{
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
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.APIKey))

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error sending request to xAI API: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response body: %v", err)
	}

	var xaiResponse XAIResponse
	if err := json.Unmarshal(respBody, &xaiResponse); err != nil {
		return "", fmt.Errorf("error unmarshaling response: %v", err)
	}

	if xaiResponse.Error != nil {
		return "", fmt.Errorf("xAI API error: %s: %s",
			xaiResponse.Error.Type, xaiResponse.Error.Message)
	}

	if len(xaiResponse.Choices) == 0 || xaiResponse.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty response from xAI API")
	}

	return xaiResponse.Choices[0].Message.Content, nil
}
