package vector

import (
	"fmt"
	"math"
)

// CosineSimilarity calculates the cosine similarity between two vectors.
// The result is a value between -1 and 1, where 1 means the vectors are
// identical, 0 means they are orthogonal, and -1 means they are opposite.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vectors must have the same dimension: %d != %d", len(a), len(b))
	}

	var dotProduct float32
	var normA float32
	var normB float32

	for i := 0; i < len(a); i++ {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, fmt.Errorf("one or both vectors have zero magnitude")
	}

	similarity := float64(dotProduct) / (math.Sqrt(float64(normA)) * math.Sqrt(float64(normB)))

	return similarity, nil
}

// CosineDistance calculates the cosine distance (1 - cosine similarity)
// between two vectors. Similarity ranking orders by ascending distance.
func CosineDistance(a, b []float32) (float64, error) {
	similarity, err := CosineSimilarity(a, b)
	if err != nil {
		return 0, err
	}
	return 1 - similarity, nil
}

// Normalize scales the vector in place to unit length. Zero vectors are
// left unchanged.
func Normalize(v []float32) {
	var sumSquares float32
	for _, val := range v {
		sumSquares += val * val
	}
	if sumSquares == 0 {
		return
	}

	magnitude := float32(math.Sqrt(float64(sumSquares)))
	for i := range v {
		v[i] /= magnitude
	}
}
