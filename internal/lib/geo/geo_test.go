package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceKm_SanFranciscoToSanJose(t *testing.T) {
	sanFrancisco := Point{Latitude: 37.7749, Longitude: -122.4194}
	sanJose := Point{Latitude: 37.3382, Longitude: -121.8863}

	distance := DistanceKm(sanFrancisco, sanJose)

	// Great-circle distance between downtown SF and downtown San Jose
	assert.InDelta(t, 68.4, distance, 0.2, "Distance should be approximately 68.4km")
}

func TestDistanceKm_Symmetry(t *testing.T) {
	a := Point{Latitude: 37.7749, Longitude: -122.4194}
	b := Point{Latitude: 37.3382, Longitude: -121.8863}

	assert.Equal(t, DistanceKm(a, b), DistanceKm(b, a))
}

func TestDistanceKm_CoincidentPoints(t *testing.T) {
	p := Point{Latitude: 37.7749, Longitude: -122.4194}

	assert.Equal(t, 0.0, DistanceKm(p, p))
}

func TestDistanceKm_NaNPropagates(t *testing.T) {
	p := Point{Latitude: math.NaN(), Longitude: -122.4194}
	q := Point{Latitude: 37.3382, Longitude: -121.8863}

	assert.True(t, math.IsNaN(DistanceKm(p, q)), "NaN input should propagate to result")
}

func TestIsNearRoute_MidpointCameraOnRoute(t *testing.T) {
	// Straight 10km route with a camera at its exact midpoint. The detour
	// through the midpoint adds essentially nothing, so it must pass.
	start := Point{Latitude: 37.7749, Longitude: -122.4194}
	end := Point{Latitude: 37.8400, Longitude: -122.3500}
	camera := Midpoint(start, end)

	assert.True(t, IsNearRoute(camera, start, end, DefaultNearRouteThresholdKm))
}

func TestIsNearRoute_DistantPoint(t *testing.T) {
	start := Point{Latitude: 37.7749, Longitude: -122.4194}
	end := Point{Latitude: 37.3382, Longitude: -121.8863}
	// Oakland is well off the direct SF-SJ line
	oakland := Point{Latitude: 37.8044, Longitude: -122.2712}

	assert.False(t, IsNearRoute(oakland, start, end, DefaultNearRouteThresholdKm))
}

func TestIsNearRoute_DegenerateRoute(t *testing.T) {
	// start == end collapses the ellipse test to a radius check:
	// d1 + d2 < threshold, i.e. the point must sit within threshold/2.
	shared := Point{Latitude: 37.7749, Longitude: -122.4194}
	nearby := Point{Latitude: 37.7750, Longitude: -122.4194} // ~11m away
	far := Point{Latitude: 37.7849, Longitude: -122.4194}    // ~1.1km away

	assert.True(t, IsNearRoute(nearby, shared, shared, 0.5))
	assert.False(t, IsNearRoute(far, shared, shared, 0.5))

	// Equivalence with the distance check from the degenerate case
	threshold := 0.5
	expected := DistanceKm(nearby, shared)*2 < threshold
	assert.Equal(t, expected, IsNearRoute(nearby, shared, shared, threshold))
}

func TestIsNearRoute_PermissiveNearEndpoints(t *testing.T) {
	start := Point{Latitude: 37.7749, Longitude: -122.4194}
	end := Point{Latitude: 37.3382, Longitude: -121.8863}

	// A point just past the start, perpendicular-ish to the route, still
	// passes because the ellipse approximation is loose near endpoints.
	nearStart := Offset(start, 0.002, 0.002)
	assert.True(t, IsNearRoute(nearStart, start, end, DefaultNearRouteThresholdKm))
}

func TestPathDistanceKm(t *testing.T) {
	start := Point{Latitude: 37.7749, Longitude: -122.4194}
	end := Point{Latitude: 37.3382, Longitude: -121.8863}
	mid := Midpoint(start, end)

	direct := DistanceKm(start, end)
	viaMid := PathDistanceKm([]Point{start, mid, end})

	// The linear midpoint lies close enough to the great circle that the
	// two-segment path is nearly the direct distance.
	assert.InDelta(t, direct, viaMid, 0.05)

	assert.Equal(t, 0.0, PathDistanceKm(nil))
	assert.Equal(t, 0.0, PathDistanceKm([]Point{start}))
}

func TestDecodePath(t *testing.T) {
	points, err := DecodePath("_p~iF~ps|U_ulLnnqC_mqNvxq`@")
	require.NoError(t, err)
	assert.Greater(t, len(points), 0)

	for _, point := range points {
		assert.True(t, point.Valid(), "decoded point should have valid coordinates")
	}

	_, err = DecodePath("")
	assert.Error(t, err)
}

func TestPointValid(t *testing.T) {
	assert.True(t, Point{Latitude: 38.0675, Longitude: -120.5436}.Valid())
	assert.False(t, Point{Latitude: 200, Longitude: -300}.Valid())
	assert.False(t, Point{Latitude: math.NaN(), Longitude: 0}.Valid())
}
