package derive

import "math"

var compassPoints = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// WindDirection buckets a wind bearing in degrees into one of eight compass
// sectors. Exact half-sector bearings round up to the next sector clockwise.
func WindDirection(deg float64) string {
	normalized := math.Mod(math.Mod(deg, 360)+360, 360)
	index := int(math.Floor(normalized/45+0.5)) % 8
	return compassPoints[index]
}
