// Package geo provides great-circle distance math for proximity search
// over plain latitude/longitude columns, avoiding a PostGIS dependency.
package geo

import "math"

// earthRadiusMeters is the mean Earth radius used by the haversine formula.
const earthRadiusMeters = 6371000.0

// Distance returns the great-circle distance in meters between two
// (latitude, longitude) points, using the haversine formula.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}

// BoundingBox returns a latitude/longitude envelope that fully contains the
// circle of radiusMeters around (lat, lng). It is a cheap SQL prefilter;
// candidates still need exact haversine refinement. Longitude spans widen
// toward the poles and collapse to the full range right at them.
func BoundingBox(lat, lng, radiusMeters float64) (minLat, maxLat, minLng, maxLng float64) {
	dLat := radiusMeters / earthRadiusMeters * 180 / math.Pi
	minLat = lat - dLat
	maxLat = lat + dLat

	cosLat := math.Cos(lat * math.Pi / 180)
	if cosLat < 1e-9 {
		return minLat, maxLat, -180, 180
	}
	dLng := dLat / cosLat
	return minLat, maxLat, lng - dLng, lng + dLng
}
