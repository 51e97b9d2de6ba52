package similarity

import (
	"math"
	"testing"
)

func TestEuclideanConfidence(t *testing.T) {
	tests := []struct {
		name     string
		a        []float32
		b        []float32
		expected float64
	}{
		{"identical", []float32{0.5, 0.5}, []float32{0.5, 0.5}, 1},
		{"distance one", []float32{0, 0}, []float32{1, 0}, 0},
		{"distance beyond one clamps", []float32{0, 0}, []float32{3, 4}, 0},
		{"half distance", []float32{0, 0}, []float32{0.5, 0}, 0.5},
		{"first missing", nil, []float32{1, 2}, 0},
		{"second missing", []float32{1, 2}, nil, 0},
		{"length mismatch", []float32{1, 2}, []float32{1, 2, 3}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := EuclideanConfidence(tc.a, tc.b)
			if math.Abs(result-tc.expected) > 1e-9 {
				t.Errorf("EuclideanConfidence(%v, %v) = %f; want %f", tc.a, tc.b, result, tc.expected)
			}
		})
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        []float32
		b        []float32
		expected float64
	}{
		{"identical", []float32{1, 0, 0}, []float32{1, 0, 0}, 1},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"scaled copies", []float32{1, 2, 3}, []float32{2, 4, 6}, 1},
		{"empty", nil, nil, 0},
		{"length mismatch", []float32{1, 2}, []float32{1, 2, 3}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := CosineSimilarity(tc.a, tc.b)
			if math.Abs(result-tc.expected) > 1e-6 {
				t.Errorf("CosineSimilarity(%v, %v) = %f; want %f", tc.a, tc.b, result, tc.expected)
			}
		})
	}
}

func TestCosineConfidence(t *testing.T) {
	tests := []struct {
		name     string
		a        []float32
		b        []float32
		expected float64
	}{
		{"identical maps to one", []float32{1, 0}, []float32{1, 0}, 1},
		{"opposite maps to zero", []float32{1, 0}, []float32{-1, 0}, 0},
		{"orthogonal maps to half", []float32{1, 0}, []float32{0, 1}, 0.5},
		{"length mismatch", []float32{1}, []float32{1, 2}, 0},
		{"missing vectors", nil, []float32{1}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := CosineConfidence(tc.a, tc.b)
			if math.Abs(result-tc.expected) > 1e-6 {
				t.Errorf("CosineConfidence(%v, %v) = %f; want %f", tc.a, tc.b, result, tc.expected)
			}
		})
	}
}

func TestCosineConfidenceDeterministic(t *testing.T) {
	a := []float32{0.12, -0.7, 0.4, 0.9}
	b := []float32{0.1, -0.65, 0.45, 0.88}

	first := CosineConfidence(a, b)
	for range 10 {
		if got := CosineConfidence(a, b); got != first {
			t.Fatalf("CosineConfidence not deterministic: %f != %f", got, first)
		}
	}
}
