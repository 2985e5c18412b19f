// Package geo provides the great-circle distance used for catalog
// distance scoring.
package geo

import "math"

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371

// DistanceKm returns the great-circle distance in kilometers between
// two coordinates, computed with the haversine formula. The function
// is pure and symmetric in its two points.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// Origin is a fixed reference coordinate against which catalog item
// distances are derived.
type Origin struct {
	Lat float64
	Lon float64
}

// DistanceTo returns the distance in kilometers from the origin to the
// given coordinate.
func (o Origin) DistanceTo(lat, lon float64) float64 {
	return DistanceKm(o.Lat, o.Lon, lat, lon)
}
