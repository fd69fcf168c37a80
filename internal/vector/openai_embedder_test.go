package vector

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stocklight/stocklight/internal/telemetry"
)

func TestOpenAIEmbedderCreateEmbedding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization header = %q, want %q", got, "Bearer test-key")
		}

		var req embeddingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if req.Input != "wireless headphones" {
			t.Errorf("request input = %q, want %q", req.Input, "wireless headphones")
		}
		if req.Dimensions != 4 {
			t.Errorf("request dimensions = %d, want 4", req.Dimensions)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"embedding": []float32{0.1, 0.2, 0.3, 0.4}},
			},
		})
	}))
	defer server.Close()

	embedder := NewOpenAIEmbedder("test-key", "", 4)
	embedder.apiURL = server.URL

	got, err := embedder.CreateEmbedding(context.Background(), "wireless headphones")
	if err != nil {
		t.Fatalf("CreateEmbedding() error: %v", err)
	}

	want := []float32{0.1, 0.2, 0.3, 0.4}
	if len(got) != len(want) {
		t.Fatalf("CreateEmbedding() returned %d values, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("CreateEmbedding()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestOpenAIEmbedderAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{
				"message": "invalid api key",
				"type":    "invalid_request_error",
			},
		})
	}))
	defer server.Close()

	embedder := NewOpenAIEmbedder("bad-key", "", 4)
	embedder.apiURL = server.URL

	metrics := telemetry.NewMetricsCollector()
	embedder.SetMetrics(metrics)

	_, err := embedder.CreateEmbedding(context.Background(), "anything")
	if err == nil {
		t.Fatal("CreateEmbedding() expected error, got nil")
	}

	if got := metrics.GetCounter(telemetry.MetricEmbedCalls); got != 1 {
		t.Errorf("embed calls counter = %d, want 1", got)
	}
	if got := metrics.GetCounter(telemetry.MetricEmbedCallsFailure); got != 1 {
		t.Errorf("embed failure counter = %d, want 1", got)
	}
}

func TestOpenAIEmbedderMissingKey(t *testing.T) {
	embedder := NewOpenAIEmbedder("", "", 4)

	if err := embedder.Initialize(); err == nil {
		t.Error("Initialize() expected error for missing API key, got nil")
	}

	if _, err := embedder.CreateEmbedding(context.Background(), "anything"); err == nil {
		t.Error("CreateEmbedding() expected error for missing API key, got nil")
	}
}
