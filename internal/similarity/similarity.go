// Package similarity provides the numeric confidence routines used by the
// identity matchers: euclidean distance, cosine similarity and a raw pixel
// comparison. All routines map onto a confidence in [0, 1].
package similarity

import "math"

// EuclideanConfidence converts the euclidean distance between two face
// descriptors into a confidence. Descriptors from the face service are
// normalized so distances above 1 carry no signal.
// Returns 0 if either vector is missing or the lengths differ.
func EuclideanConfidence(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}

	conf := 1 - math.Sqrt(sum)
	if conf < 0 {
		return 0
	}
	return conf
}

// CosineSimilarity computes the cosine similarity between two embedding vectors.
// Returns a value between -1 and 1, where 1 means identical.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	similarity := dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
	// Clamp to [-1, 1] to handle floating point errors
	if similarity > 1 {
		similarity = 1
	}
	if similarity < -1 {
		similarity = -1
	}

	return similarity
}

// CosineConfidence maps cosine similarity from [-1, 1] into a confidence
// in [0, 1]. Returns 0 when the vectors are incomparable (missing or of
// different dimensions).
func CosineConfidence(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	conf := (CosineSimilarity(a, b) + 1) / 2
	if conf < 0 {
		return 0
	}
	return conf
}
