// Package geo holds the coordinate types and distance math shared by
// both document extractors and the matching engine.
package geo

import (
	"fmt"
	"math"
)

// EarthRadiusM is the mean Earth radius in meters used for all
// great-circle distances.
const EarthRadiusM = 6371000.0

// LatLon is a geographic coordinate in standard latitude/longitude order.
type LatLon struct {
	Lat float64
	Lon float64
}

// Key is a rounded coordinate bucket usable as a map key. Six decimal
// places is roughly 0.1 m, tight enough that two field captures of the
// same pole collide and two neighboring poles do not.
type Key string

// Key returns the 6-decimal bucket key for the coordinate.
func (c LatLon) Key() Key {
	return Key(fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lon))
}

// String formats the coordinate for display.
func (c LatLon) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", c.Lat, c.Lon)
}

// Haversine returns the great-circle distance between a and b in meters.
func Haversine(a, b LatLon) float64 {
	lat1 := a.Lat * math.Pi / 180
	lon1 := a.Lon * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	lon2 := b.Lon * math.Pi / 180

	dlat := lat2 - lat1
	dlon := lon2 - lon1

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	return 2 * EarthRadiusM * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// FromLonLat converts a GeoJSON-order [longitude, latitude] pair into a
// LatLon. Returns false unless exactly two values are present.
func FromLonLat(coords []float64) (LatLon, bool) {
	if len(coords) != 2 {
		return LatLon{}, false
	}
	return LatLon{Lat: coords[1], Lon: coords[0]}, true
}

// MaybeSwapped builds a LatLon from flat latitude/longitude fields,
// correcting the axis order when the pair was evidently exported
// swapped: a "latitude" inside ±5° next to a "longitude" beyond ±20°
// is read as a swapped pair, not a near-equatorial point.
func MaybeSwapped(lat, lon float64) LatLon {
	if math.Abs(lat) < 5 && math.Abs(lon) > 20 {
		lat, lon = lon, lat
	}
	return LatLon{Lat: lat, Lon: lon}
}
