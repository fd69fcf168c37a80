package vector

import (
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        []float32
		b        []float32
		expected float64
		wantErr  bool
	}{
		{
			name:     "identical vectors",
			a:        []float32{1.0, 2.0, 3.0},
			b:        []float32{1.0, 2.0, 3.0},
			expected: 1.0,
			wantErr:  false,
		},
		{
			name:     "orthogonal vectors",
			a:        []float32{1.0, 0.0, 0.0},
			b:        []float32{0.0, 1.0, 0.0},
			expected: 0.0,
			wantErr:  false,
		},
		{
			name:     "opposite vectors",
			a:        []float32{1.0, 2.0, 3.0},
			b:        []float32{-1.0, -2.0, -3.0},
			expected: -1.0,
			wantErr:  false,
		},
		{
			name:    "different length vectors",
			a:       []float32{1.0, 2.0, 3.0},
			b:       []float32{1.0, 2.0},
			wantErr: true,
		},
		{
			name:    "zero vector",
			a:       []float32{0.0, 0.0, 0.0},
			b:       []float32{1.0, 2.0, 3.0},
			wantErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			similarity, err := CosineSimilarity(test.a, test.b)

			if (err != nil) != test.wantErr {
				t.Errorf("CosineSimilarity() error = %v, wantErr %v", err, test.wantErr)
				return
			}
			if test.wantErr {
				return
			}

			if math.Abs(similarity-test.expected) > 1e-6 {
				t.Errorf("CosineSimilarity() = %v, want %v", similarity, test.expected)
			}
		})
	}
}

func TestCosineDistance(t *testing.T) {
	tests := []struct {
		name     string
		a        []float32
		b        []float32
		expected float64
	}{
		{
			name:     "identical vectors have zero distance",
			a:        []float32{1.0, 2.0, 3.0},
			b:        []float32{1.0, 2.0, 3.0},
			expected: 0.0,
		},
		{
			name:     "orthogonal vectors have distance one",
			a:        []float32{1.0, 0.0},
			b:        []float32{0.0, 1.0},
			expected: 1.0,
		},
		{
			name:     "opposite vectors have distance two",
			a:        []float32{1.0, 0.0},
			b:        []float32{-1.0, 0.0},
			expected: 2.0,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			distance, err := CosineDistance(test.a, test.b)
			if err != nil {
				t.Errorf("CosineDistance() error: %v", err)
				return
			}

			if math.Abs(distance-test.expected) > 1e-6 {
				t.Errorf("CosineDistance() = %v, want %v", distance, test.expected)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	v := []float32{3.0, 4.0}
	Normalize(v)

	var sumSquares float64
	for _, val := range v {
		sumSquares += float64(val) * float64(val)
	}

	if math.Abs(sumSquares-1.0) > 1e-6 {
		t.Errorf("Normalize() produced magnitude %v, want 1.0", math.Sqrt(sumSquares))
	}

	// Zero vectors are left unchanged.
	zero := []float32{0.0, 0.0}
	Normalize(zero)
	if zero[0] != 0.0 || zero[1] != 0.0 {
		t.Errorf("Normalize() modified zero vector: %v", zero)
	}
}
