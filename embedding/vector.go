package embedding

import "math"

// Vector is a flat embedding vector. Two vectors of different
// dimension are comparable by truncating to the shorter length; a
// dimension mismatch is a degraded comparison, never an error.
type Vector []float32

// Cosine returns the cosine similarity of a and b over their first
// min(len(a), len(b)) dimensions, bounded to [-1, 1]. It returns
// exactly 0 when either vector is nil, empty, or has zero magnitude.
func Cosine(a, b Vector) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}

	var dot, magA, magB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(magA) * math.Sqrt(magB))
	// Guard against float drift past the bounds.
	if sim > 1 {
		sim = 1
	} else if sim < -1 {
		sim = -1
	}
	return float32(sim)
}
