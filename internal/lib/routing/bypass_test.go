package routing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/geo"
)

// stubLegRouter returns a fixed leg or error for every RouteVia call.
type stubLegRouter struct {
	leg   *ProviderLeg
	err   error
	calls int
}

func (s *stubLegRouter) RouteVia(ctx context.Context, origin, via, destination geo.Point) (*ProviderLeg, error) {
	s.calls++
	return s.leg, s.err
}

var congestedPoint = geo.Point{Latitude: 37.7749, Longitude: -122.4194}

func TestGenerateBypasses_EightCompassDirections(t *testing.T) {
	estimator := NewMockRouteEstimator(3)

	bypasses := GenerateBypasses(context.Background(), congestedPoint, estimator, nil)

	require.Len(t, bypasses, 8)

	names := make(map[string]bool)
	for _, bypass := range bypasses {
		names[bypass.Direction] = true
		assert.Contains(t, bypass.Name, "Bypass")
		assert.False(t, bypass.FromProvider)
		assert.Greater(t, bypass.DistanceKm, 0.0)
		assert.Greater(t, bypass.TimeMin, 0.0)
		assert.GreaterOrEqual(t, bypass.SavingsMin, 0.0)
		assert.GreaterOrEqual(t, bypass.DelayMin, 0.0)
		require.Len(t, bypass.Path, 3)
	}

	for _, direction := range []string{"North", "South", "East", "West", "Northeast", "Northwest", "Southeast", "Southwest"} {
		assert.True(t, names[direction], "missing %s bypass", direction)
	}
}

func TestGenerateBypass_WaypointOffsetScalesWithRadius(t *testing.T) {
	estimator := NewMockRouteEstimator(3)

	north := GenerateBypass(context.Background(), congestedPoint, bypassDirections[0], estimator, nil)
	require.NotNil(t, north)

	// Cardinal directions use radius 3: waypoint sits 0.03 degrees north.
	waypoint := north.Path[1]
	assert.InDelta(t, congestedPoint.Latitude+0.03, waypoint.Latitude, 1e-9)
	assert.InDelta(t, congestedPoint.Longitude, waypoint.Longitude, 1e-9)

	northeast := GenerateBypass(context.Background(), congestedPoint, bypassDirections[4], estimator, nil)
	require.NotNil(t, northeast)

	// Diagonals use radius 2: 0.02 degrees on each axis.
	waypoint = northeast.Path[1]
	assert.InDelta(t, congestedPoint.Latitude+0.02, waypoint.Latitude, 1e-9)
	assert.InDelta(t, congestedPoint.Longitude+0.02, waypoint.Longitude, 1e-9)
}

func TestGenerateBypass_ProviderBackedFigures(t *testing.T) {
	estimator := NewMockRouteEstimator(3)
	router := &stubLegRouter{
		leg: &ProviderLeg{DistanceMeters: 4200, DurationSeconds: 390}, // 6.5 min
	}

	bypass := GenerateBypass(context.Background(), congestedPoint, bypassDirections[0], estimator, router)

	require.NotNil(t, bypass)
	assert.True(t, bypass.FromProvider)
	assert.InDelta(t, 4.2, bypass.DistanceKm, 1e-9)
	assert.Equal(t, 7.0, bypass.TimeMin) // round(390/60)
	assert.Equal(t, 1.0, bypass.SavingsMin)
	assert.Equal(t, 2.0, bypass.DelayMin)
	assert.Equal(t, 1, router.calls)
}

func TestGenerateBypass_SlowProviderLegHasNoSavings(t *testing.T) {
	estimator := NewMockRouteEstimator(3)
	router := &stubLegRouter{
		leg: &ProviderLeg{DistanceMeters: 9000, DurationSeconds: 720}, // 12 min
	}

	bypass := GenerateBypass(context.Background(), congestedPoint, bypassDirections[1], estimator, router)

	require.NotNil(t, bypass)
	assert.Equal(t, 0.0, bypass.SavingsMin, "slower than the congested baseline saves nothing")
	assert.Equal(t, 7.0, bypass.DelayMin)
}

func TestGenerateBypass_ProviderErrorFallsBackToMock(t *testing.T) {
	estimator := NewMockRouteEstimator(3)
	router := &stubLegRouter{err: errors.New("provider unavailable")}

	bypass := GenerateBypass(context.Background(), congestedPoint, bypassDirections[0], estimator, router)

	require.NotNil(t, bypass)
	assert.False(t, bypass.FromProvider, "provider failure must degrade to mock figures")
	assert.Greater(t, bypass.DistanceKm, 0.0)
	assert.Greater(t, bypass.TimeMin, 0.0)
}

func TestGenerateBypass_ProviderPathReplacesSyntheticArc(t *testing.T) {
	estimator := NewMockRouteEstimator(3)
	providerPath := []geo.Point{
		{Latitude: 37.775, Longitude: -122.420},
		{Latitude: 37.780, Longitude: -122.419},
		{Latitude: 37.775, Longitude: -122.418},
		{Latitude: 37.774, Longitude: -122.417},
	}
	router := &stubLegRouter{
		leg: &ProviderLeg{DistanceMeters: 3000, DurationSeconds: 300, Path: providerPath},
	}

	bypass := GenerateBypass(context.Background(), congestedPoint, bypassDirections[2], estimator, router)

	require.NotNil(t, bypass)
	assert.Equal(t, providerPath, bypass.Path)
}

func TestGenerateBypasses_DeterministicWithSeed(t *testing.T) {
	first := GenerateBypasses(context.Background(), congestedPoint, NewMockRouteEstimator(11), nil)
	second := GenerateBypasses(context.Background(), congestedPoint, NewMockRouteEstimator(11), nil)

	require.Len(t, first, len(second))
	for i := range first {
		assert.Equal(t, first[i].DistanceKm, second[i].DistanceKm)
		assert.Equal(t, first[i].TimeMin, second[i].TimeMin)
	}
}
