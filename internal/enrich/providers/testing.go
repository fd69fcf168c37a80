package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// MockResponseConfig holds configuration for mock API responses
type MockResponseConfig struct {
	StatusCode   int
	ResponseBody interface{}
	Headers      map[string]string
}

// MockServer creates a test server that returns the configured response
func MockServer(t *testing.T, config MockResponseConfig) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for k, v := range config.Headers {
			w.Header().Set(k, v)
		}

		if _, exists := config.Headers["Content-Type"]; !exists {
			w.Header().Set("Content-Type", "application/json")
		}

		w.WriteHeader(config.StatusCode)

		if config.ResponseBody != nil {
			var respBytes []byte
			var err error

			switch body := config.ResponseBody.(type) {
			case string:
				respBytes = []byte(body)
			case []byte:
				respBytes = body
			default:
				respBytes, err = json.Marshal(body)
				if err != nil {
					t.Fatalf("failed to marshal mock response body: %v", err)
				}
			}

			if _, err := w.Write(respBytes); err != nil {
				t.Errorf("failed to write mock response: %v", err)
			}
		}
	}))
}

// MockProvider is a test implementation of the LLMProvider interface with
// scriptable responses.
type MockProvider struct {
	ProviderName string
	Response     string
	Err          error
	Calls        []string
}

// NewMockProvider creates a MockProvider that returns the given response.
func NewMockProvider(name, response string) *MockProvider {
	return &MockProvider{
		ProviderName: name,
		Response:     response,
	}
}

// Name returns the provider name
func (p *MockProvider) Name() string {
	if p.ProviderName == "" {
		return "mock"
	}
	return p.ProviderName
}

// Complete records the prompt and returns the scripted response or error.
func (p *MockProvider) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	p.Calls = append(p.Calls, prompt)
	if p.Err != nil {
		return "", p.Err
	}
	if p.Response == "" {
		return "", fmt.Errorf("no response configured for mock provider")
	}
	return p.Response, nil
}
