// Package vector provides the numeric primitives behind semantic scoring.
package vector

import (
	"fmt"
	"math"

	"github.com/seedfolio/seedfolio/internal/domain"
)

// CosineSimilarity returns the cosine of the angle between a and b.
// Vectors of unequal length fail with domain.ErrDimensionMismatch.
// Zero-magnitude input (including two empty vectors) returns 0 by convention.
// Negative values are not clamped; relevance callers clamp on their side.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", domain.ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	magnitude := math.Sqrt(normA) * math.Sqrt(normB)
	if magnitude == 0 {
		return 0, nil
	}

	return dot / magnitude, nil
}

// Normalize scales v to unit length. A zero-magnitude vector is returned unchanged.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}

	magnitude := math.Sqrt(sum)
	if magnitude == 0 {
		return v
	}

	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / magnitude)
	}
	return out
}

// BatchSimilarity maps CosineSimilarity(query, c) over candidates, preserving order.
// A candidate with a mismatched dimension scores 0 instead of failing the batch.
func BatchSimilarity(query []float32, candidates [][]float32) []float64 {
	scores := make([]float64, len(candidates))
	for i, c := range candidates {
		s, err := CosineSimilarity(query, c)
		if err != nil {
			continue
		}
		scores[i] = s
	}
	return scores
}
