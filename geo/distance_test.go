package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm(t *testing.T) {
	t.Run("same point is zero", func(t *testing.T) {
		assert.Zero(t, DistanceKm(13.04182, 77.528481, 13.04182, 77.528481))
	})

	t.Run("symmetric", func(t *testing.T) {
		d1 := DistanceKm(13.04182, 77.528481, 12.9716, 77.5946)
		d2 := DistanceKm(12.9716, 77.5946, 13.04182, 77.528481)
		assert.InDelta(t, d1, d2, 1e-9)
	})

	t.Run("never negative", func(t *testing.T) {
		assert.GreaterOrEqual(t, DistanceKm(-45, -170, 60, 150), 0.0)
	})

	t.Run("known distance", func(t *testing.T) {
		// Bangalore to Chennai, roughly 290 km great-circle.
		d := DistanceKm(12.9716, 77.5946, 13.0827, 80.2707)
		assert.InDelta(t, 290, d, 10)
	})
}

func TestOriginDistanceTo(t *testing.T) {
	origin := Origin{Lat: 13.04182, Lon: 77.528481}
	direct := DistanceKm(13.04182, 77.528481, 12.9716, 77.5946)
	assert.InDelta(t, direct, origin.DistanceTo(12.9716, 77.5946), 1e-9)
}
