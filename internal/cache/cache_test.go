package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/geo"
	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/traffic"
)

func TestCache_SetAndGet(t *testing.T) {
	c := New()

	snapshot := traffic.Snapshot{
		Cameras: []traffic.CameraObservation{
			{ID: "cam-001", Name: "Market & 5th"},
		},
	}
	require.NoError(t, c.Set(SnapshotKey, snapshot, 5*time.Minute, "static"))

	var cached traffic.Snapshot
	found, err := c.Get(SnapshotKey, &cached)

	require.NoError(t, err)
	assert.True(t, found)
	require.Len(t, cached.Cameras, 1)
	assert.Equal(t, "cam-001", cached.Cameras[0].ID)
}

func TestCache_GetMissingKey(t *testing.T) {
	c := New()

	var out traffic.Snapshot
	found, err := c.Get("nope", &out)

	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_StaleEntryNotServedByGet(t *testing.T) {
	c := New()

	// A negative refresh interval expires the entry immediately.
	require.NoError(t, c.Set("k", "value", -time.Minute, "test"))

	var out string
	found, err := c.Get("k", &out)

	require.NoError(t, err)
	assert.False(t, found)
	assert.True(t, c.IsStale("k"))
}

func TestCache_StaleEntryStillReadableWithMetadata(t *testing.T) {
	c := New()

	require.NoError(t, c.Set("k", "stale-but-usable", -time.Minute, "feed"))

	var out string
	entry, exists, err := c.GetWithMetadata("k", &out)

	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "stale-but-usable", out)
	assert.Equal(t, "feed", entry.Source)
}

func TestCache_IsVeryStale(t *testing.T) {
	c := New()

	require.NoError(t, c.Set("fresh", "v", 5*time.Minute, "test"))
	require.NoError(t, c.Set("expired", "v", -time.Minute, "test"))

	assert.False(t, c.IsVeryStale("fresh"))
	assert.True(t, c.IsVeryStale("expired"))
	assert.True(t, c.IsVeryStale("missing"))
}

func TestCache_DeleteAndClear(t *testing.T) {
	c := New()

	require.NoError(t, c.Set("a", 1, time.Minute, "test"))
	require.NoError(t, c.Set("b", 2, time.Minute, "test"))

	c.Delete("a")
	assert.True(t, c.IsStale("a"))
	assert.ElementsMatch(t, []string{"b"}, c.Keys())

	c.Clear()
	assert.Empty(t, c.Keys())
}

func TestCache_Stats(t *testing.T) {
	c := New()

	require.NoError(t, c.Set("fresh", 1, time.Minute, "test"))
	require.NoError(t, c.Set("stale", 2, -time.Minute, "test"))

	stats := c.Stats()

	assert.Equal(t, 2, stats.TotalEntries)
	assert.Equal(t, 1, stats.FreshEntries)
	assert.Equal(t, 1, stats.StaleEntries)
	assert.False(t, stats.OldestEntry.IsZero())
}

func TestCache_CleanupStale(t *testing.T) {
	c := New()

	require.NoError(t, c.Set("fresh", 1, time.Minute, "test"))
	require.NoError(t, c.Set("stale", 2, -time.Minute, "test"))

	removed := c.CleanupStale()

	assert.Equal(t, 1, removed)
	assert.ElementsMatch(t, []string{"fresh"}, c.Keys())
}

func TestSuggestionKey_RoundsNearbyEndpoints(t *testing.T) {
	a := SuggestionKey(
		geo.Point{Latitude: 37.77491, Longitude: -122.41941},
		geo.Point{Latitude: 37.33821, Longitude: -121.88631})
	b := SuggestionKey(
		geo.Point{Latitude: 37.77494, Longitude: -122.41944},
		geo.Point{Latitude: 37.33824, Longitude: -121.88634})

	assert.Equal(t, a, b, "requests within ~100m share a cache entry")

	c := SuggestionKey(
		geo.Point{Latitude: 37.8, Longitude: -122.4},
		geo.Point{Latitude: 37.3, Longitude: -121.9})
	assert.NotEqual(t, a, c)
}

func TestBypassKey(t *testing.T) {
	key := BypassKey(geo.Point{Latitude: 37.7749, Longitude: -122.4194})
	assert.Equal(t, "bypasses:37.775,-122.419", key)
}
