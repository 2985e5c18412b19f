package embedding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosine(t *testing.T) {
	t.Run("self similarity is one", func(t *testing.T) {
		v := Vector{0.3, -0.7, 0.2, 0.9}
		assert.InDelta(t, 1.0, Cosine(v, v), 1e-6)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := Vector{1, 2, 3}
		b := Vector{-2, 0.5, 4}
		assert.InDelta(t, Cosine(a, b), Cosine(b, a), 1e-9)
	})

	t.Run("orthogonal", func(t *testing.T) {
		assert.InDelta(t, 0.0, Cosine(Vector{1, 0}, Vector{0, 1}), 1e-9)
	})

	t.Run("opposite is minus one", func(t *testing.T) {
		assert.InDelta(t, -1.0, Cosine(Vector{1, 2}, Vector{-1, -2}), 1e-6)
	})

	t.Run("zero magnitude returns zero", func(t *testing.T) {
		assert.Zero(t, Cosine(Vector{1, 2, 3}, Vector{0, 0, 0}))
		assert.Zero(t, Cosine(Vector{0, 0}, Vector{0, 0}))
	})

	t.Run("nil or empty returns zero", func(t *testing.T) {
		assert.Zero(t, Cosine(nil, Vector{1, 2}))
		assert.Zero(t, Cosine(Vector{1, 2}, nil))
		assert.Zero(t, Cosine(Vector{}, Vector{1}))
	})

	t.Run("dimension mismatch truncates", func(t *testing.T) {
		a := Vector{1, 0, 5, 5, 5}
		b := Vector{1, 0}
		// Only the first two dimensions are compared, which are identical.
		assert.InDelta(t, 1.0, Cosine(a, b), 1e-6)
	})

	t.Run("bounded", func(t *testing.T) {
		s := Cosine(Vector{0.1, 0.1, 0.1}, Vector{0.1, 0.1, 0.1})
		assert.LessOrEqual(t, s, float32(1))
		assert.GreaterOrEqual(t, s, float32(-1))
	})
}
