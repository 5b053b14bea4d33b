package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	// Gangnam station to Seolleung station is roughly 2 km.
	d := Distance(37.4979, 127.0276, 37.5045, 127.0490)
	assert.InDelta(t, 2030, d, 150)

	// Same point.
	assert.Zero(t, Distance(37.5, 127.0, 37.5, 127.0))

	// 0.01 degrees of latitude is about 1.11 km anywhere.
	d = Distance(37.50, 127.00, 37.51, 127.00)
	assert.InDelta(t, 1112, d, 10)
}

func TestDistanceSymmetry(t *testing.T) {
	a := Distance(37.50, 127.00, 37.51, 127.02)
	b := Distance(37.51, 127.02, 37.50, 127.00)
	assert.InDelta(t, a, b, 1e-9)
}

func TestBoundingBoxContainsRadius(t *testing.T) {
	lat, lng, radius := 37.50, 127.00, 2000.0
	minLat, maxLat, minLng, maxLng := BoundingBox(lat, lng, radius)

	assert.Less(t, minLat, lat)
	assert.Greater(t, maxLat, lat)
	assert.Less(t, minLng, lng)
	assert.Greater(t, maxLng, lng)

	// Points on the box edges must be at least radius away in their axis.
	assert.GreaterOrEqual(t, Distance(lat, lng, maxLat, lng), radius-1)
	assert.GreaterOrEqual(t, Distance(lat, lng, lat, maxLng), radius-1)
}

func TestBoundingBoxNearPole(t *testing.T) {
	_, _, minLng, maxLng := BoundingBox(89.9999, 0, 5000)
	assert.Equal(t, -180.0, minLng)
	assert.Equal(t, 180.0, maxLng)
}
