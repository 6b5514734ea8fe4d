package utils

import "math"

const earthRadiusMeters = 6371000

// Coordinate is a WGS84 point in decimal degrees.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// DistanceMeters returns the great-circle (haversine) distance between a and b.
func DistanceMeters(a, b Coordinate) float64 {
	dLat := radians(b.Latitude - a.Latitude)
	dLon := radians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Latitude))*math.Cos(radians(b.Latitude))*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

// WithinRadius reports the distance from center to p and whether it is at
// most radius meters.
func WithinRadius(center, p Coordinate, radius float64) (float64, bool) {
	d := DistanceMeters(center, p)
	return d, d <= radius
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
