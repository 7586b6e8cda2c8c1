package domain

import "math"

// CosineSimilarity computes dot(a,b) / (|a||b|) in [-1, 1].
// Absent vectors, mismatched lengths, and zero norms all yield 0, a defined
// degenerate value, never an error or NaN.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// ClampScore maps any score onto the canonical [0, 1] scale.
// Negative cosine similarity collapses to 0.
func ClampScore(s float64) float64 {
	switch {
	case math.IsNaN(s), s < 0:
		return 0
	case s > 1:
		return 1
	default:
		return s
	}
}
