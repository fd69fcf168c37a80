// Package vector provides embedding generation and vector utilities for the
// Stocklight similarity-search subsystem.
package vector

import "context"

const (
	// DefaultEmbeddingDimensions defines the standard size of embedding vectors.
	// Product-name embeddings are stored as 1024-dimension vectors.
	DefaultEmbeddingDimensions = 1024
)

// Embedder defines the interface for creating vector embeddings from text.
type Embedder interface {
	// CreateEmbedding converts text into a vector representation.
	CreateEmbedding(ctx context.Context, text string) ([]float32, error)

	// Initialize sets up the embedder with any required configuration.
	Initialize() error

	// Dimensions returns the size of the vectors this embedder produces.
	Dimensions() int
}
