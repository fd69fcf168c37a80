package vector

import (
	"context"
	"crypto/md5"
	"encoding/binary"
)

// MockEmbedder is a simple implementation of the Embedder interface.
// It creates deterministic but simplistic embeddings for testing and
// for keyless configurations.
type MockEmbedder struct {
	dimensions int
}

// NewMockEmbedder creates a new MockEmbedder with the specified dimensions.
func NewMockEmbedder(dimensions int) *MockEmbedder {
	if dimensions <= 0 {
		dimensions = DefaultEmbeddingDimensions
	}
	return &MockEmbedder{
		dimensions: dimensions,
	}
}

// Initialize sets up the embedder with any required configuration.
func (e *MockEmbedder) Initialize() error {
	return nil // No initialization needed for the mock embedder
}

// Dimensions returns the size of the vectors this embedder produces.
func (e *MockEmbedder) Dimensions() int {
	return e.dimensions
}

// CreateEmbedding generates a mock embedding for the given text.
// It uses a deterministic algorithm based on MD5 hashing so that the same
// text always produces the same embedding.
func (e *MockEmbedder) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	embedding := make([]float32, e.dimensions)

	hash := md5.Sum([]byte(text))

	for i := 0; i < e.dimensions; i++ {
		// Use 4 bytes from the hash as a seed for each dimension,
		// wrapping around the hash as needed.
		hashIdx := (i * 4) % len(hash)
		seed := binary.LittleEndian.Uint32(append(hash[hashIdx:], hash[:4]...))

		embedding[i] = float32(seed%1000)/500.0 - 1.0
	}

	Normalize(embedding)

	return embedding, nil
}
