package vector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/stocklight/stocklight/internal/telemetry"
)

const (
	openaiEmbeddingsURL = "https://api.openai.com/v1/embeddings"

	// DefaultEmbeddingModel is used when no model is configured.
	DefaultEmbeddingModel = "text-embedding-3-small"
)

// OpenAIEmbedder implements the Embedder interface using OpenAI's
// embeddings API.
type OpenAIEmbedder struct {
	apiKey     string
	model      string
	dimensions int
	apiURL     string
	httpClient *http.Client
	metrics    *telemetry.MetricsCollector
}

// NewOpenAIEmbedder creates a new OpenAI embedder. The dimensions parameter
// is sent to the API so that vectors match the configured store dimension.
func NewOpenAIEmbedder(apiKey, model string, dimensions int) *OpenAIEmbedder {
	if model == "" {
		model = DefaultEmbeddingModel
	}
	if dimensions <= 0 {
		dimensions = DefaultEmbeddingDimensions
	}

	return &OpenAIEmbedder{
		apiKey:     apiKey,
		model:      model,
		dimensions: dimensions,
		apiURL:     openaiEmbeddingsURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetMetrics attaches a metrics collector. Embedding calls then record
// call counts and latency.
func (e *OpenAIEmbedder) SetMetrics(metrics *telemetry.MetricsCollector) {
	e.metrics = metrics
}

// Initialize verifies that the embedder is configured with an API key.
func (e *OpenAIEmbedder) Initialize() error {
	if e.apiKey == "" {
		return fmt.Errorf("OpenAI API key not provided")
	}
	return nil
}

// Dimensions returns the size of the vectors this embedder produces.
func (e *OpenAIEmbedder) Dimensions() int {
	return e.dimensions
}

// embeddingRequest represents a request to the OpenAI embeddings API.
type embeddingRequest struct {
	Model      string `json:"model"`
	Input      string `json:"input"`
	Dimensions int    `json:"dimensions,omitempty"`
}

// embeddingResponse represents a response from the OpenAI embeddings API.
type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// CreateEmbedding converts text into a vector representation via the
// OpenAI embeddings API.
func (e *OpenAIEmbedder) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if e.metrics != nil {
		e.metrics.IncrementCounter(telemetry.MetricEmbedCalls, 1)
		start := time.Now()
		defer func() {
			e.metrics.RecordTimer(telemetry.MetricEmbedTime, time.Since(start))
		}()
	}

	embedding, err := e.createEmbedding(ctx, text)
	if err != nil && e.metrics != nil {
		e.metrics.IncrementCounter(telemetry.MetricEmbedCallsFailure, 1)
	}
	return embedding, err
}

func (e *OpenAIEmbedder) createEmbedding(ctx context.Context, text string) ([]float32, error) {
	if e.apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not provided")
	}

	reqBody := embeddingRequest{
		Model:      e.model,
		Input:      text,
		Dimensions: e.dimensions,
	}

	reqJSON, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.apiURL, bytes.NewReader(reqJSON))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request to OpenAI embeddings API: %v", err)
	}
	defer resp.Body.Close()

	var embResponse embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&embResponse); err != nil {
		return nil, fmt.Errorf("error decoding response: %v", err)
	}

	if embResponse.Error != nil {
		return nil, fmt.Errorf("OpenAI embeddings API error: %s: %s",
			embResponse.Error.Type, embResponse.Error.Message)
	}

	if len(embResponse.Data) == 0 || len(embResponse.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("empty embedding returned from OpenAI embeddings API")
	}

	return embResponse.Data[0].Embedding, nil
}
