package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/geo"
)

var (
	sanFrancisco = geo.Point{Latitude: 37.7749, Longitude: -122.4194}
	sanJose      = geo.Point{Latitude: 37.3382, Longitude: -121.8863}
)

func TestNewPrimaryRoute_SanFranciscoToSanJose(t *testing.T) {
	primary := NewPrimaryRoute(sanFrancisco, sanJose)

	assert.InDelta(t, 68.4, primary.DistanceKm, 0.2)
	// round(68.4 / 40 * 60) = 103 minutes at the fixed city speed
	assert.InDelta(t, 103, primary.EstimatedTimeMin, 1)
	assert.False(t, primary.IsAlternate)
	require.Len(t, primary.Path, 2)
	assert.Equal(t, sanFrancisco, primary.Path[0])
	assert.Equal(t, sanJose, primary.Path[1])
	assert.NotEmpty(t, primary.ID)
}

func TestNewPrimaryRouteAtSpeed_UsesGivenSpeed(t *testing.T) {
	slow := NewPrimaryRouteAtSpeed(sanFrancisco, sanJose, 30)
	fast := NewPrimaryRouteAtSpeed(sanFrancisco, sanJose, 60)

	assert.InDelta(t, slow.DistanceKm, fast.DistanceKm, 1e-9)
	// round(68.4 / 30 * 60) = 137, round(68.4 / 60 * 60) = 68
	assert.InDelta(t, 137, slow.EstimatedTimeMin, 1)
	assert.InDelta(t, 68, fast.EstimatedTimeMin, 1)
}

func TestGenerateAlternates_TwoOffsetCorridors(t *testing.T) {
	primary := NewPrimaryRoute(sanFrancisco, sanJose)
	estimator := NewMockRouteEstimator(42)

	alternates := GenerateAlternates(sanFrancisco, sanJose, primary, estimator)

	require.Len(t, alternates, 2)
	for i, alt := range alternates {
		assert.True(t, alt.IsAlternate)
		require.Len(t, alt.Path, 4, "alternate %d", i)

		// Endpoints never change; only intermediate waypoints shift.
		assert.Equal(t, sanFrancisco, alt.Path[0])
		assert.Equal(t, sanJose, alt.Path[3])

		offset := float64(i+1) * alternateOffsetDeg
		assert.InDelta(t, sanFrancisco.Latitude+offset, alt.Path[1].Latitude, 1e-9)
		assert.InDelta(t, sanFrancisco.Longitude+offset, alt.Path[1].Longitude, 1e-9)
		assert.InDelta(t, sanJose.Latitude-offset, alt.Path[2].Latitude, 1e-9)
		assert.InDelta(t, sanJose.Longitude-offset, alt.Path[2].Longitude, 1e-9)

		// Jittered values stay within the documented band.
		factor := alt.DistanceKm / primary.DistanceKm
		assert.GreaterOrEqual(t, factor, 0.95)
		assert.Less(t, factor, 1.05)

		assert.InDelta(t, primary.EstimatedTimeMin-alt.EstimatedTimeMin, alt.TimeSavingsMin, 1e-9)
	}
}

func TestGenerateAlternates_DeterministicWithSeed(t *testing.T) {
	primary := NewPrimaryRoute(sanFrancisco, sanJose)

	first := GenerateAlternates(sanFrancisco, sanJose, primary, NewMockRouteEstimator(7))
	second := GenerateAlternates(sanFrancisco, sanJose, primary, NewMockRouteEstimator(7))

	require.Len(t, first, 2)
	require.Len(t, second, 2)
	for i := range first {
		assert.Equal(t, first[i].DistanceKm, second[i].DistanceKm)
		assert.Equal(t, first[i].EstimatedTimeMin, second[i].EstimatedTimeMin)
		assert.Equal(t, first[i].TimeSavingsMin, second[i].TimeSavingsMin)
	}
}

func TestMockRouteEstimator_JitterRange(t *testing.T) {
	estimator := NewMockRouteEstimator(1)

	for i := 0; i < 1000; i++ {
		factor := estimator.Jitter()
		assert.GreaterOrEqual(t, factor, 0.95)
		assert.Less(t, factor, 1.05)
	}
}

func TestEstimateTimeMin(t *testing.T) {
	assert.Equal(t, 60.0, EstimateTimeMin(40))
	assert.Equal(t, 0.0, EstimateTimeMin(0))
	assert.Equal(t, 15.0, EstimateTimeMin(10))
}

func TestEstimateTimeAtSpeedMin(t *testing.T) {
	assert.Equal(t, 40.0, EstimateTimeAtSpeedMin(40, 60))
	assert.Equal(t, 80.0, EstimateTimeAtSpeedMin(40, 30))
	// Non-positive speed falls back to the default.
	assert.Equal(t, EstimateTimeMin(40), EstimateTimeAtSpeedMin(40, 0))
	assert.Equal(t, EstimateTimeMin(40), EstimateTimeAtSpeedMin(40, -5))
}
