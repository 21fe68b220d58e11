package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/traffic"
)

func TestStaticSource_SnapshotIsInternallyConsistent(t *testing.T) {
	source := NewStaticSource()

	snapshot, err := source.Snapshot(context.Background())

	require.NoError(t, err)
	require.Len(t, snapshot.Cameras, len(staticCameras))
	require.Len(t, snapshot.Analytics, len(staticCameras))

	analyticsByCamera := make(map[string]traffic.AnalyticsRecord)
	for _, record := range snapshot.Analytics {
		analyticsByCamera[record.CameraID] = record
	}

	for _, camera := range snapshot.Cameras {
		level, avgSpeed := traffic.ClassifyCongestion(camera.VehicleCount)
		assert.Equal(t, level, camera.CongestionLevel, "camera %s", camera.ID)
		assert.Equal(t, avgSpeed, camera.AverageSpeedKmh, "camera %s", camera.ID)
		assert.True(t, camera.Position.Valid(), "camera %s", camera.ID)

		record, ok := analyticsByCamera[camera.ID]
		require.True(t, ok, "camera %s has no analytics record", camera.ID)
		assert.Equal(t, level.Bucket(), record.CongestionLevel)
		assert.GreaterOrEqual(t, record.TrafficDensity, 0.0)
		assert.LessOrEqual(t, record.TrafficDensity, 1.0)
	}
}

func TestStaticSource_CongestedClusterDowntown(t *testing.T) {
	source := NewStaticSource()

	snapshot, err := source.Snapshot(context.Background())
	require.NoError(t, err)

	byID := make(map[string]traffic.CameraObservation)
	for _, camera := range snapshot.Cameras {
		byID[camera.ID] = camera
	}

	assert.Equal(t, traffic.CongestionTrafficJam, byID["cam-003"].CongestionLevel)
	assert.Equal(t, traffic.CongestionFreeFlow, byID["cam-008"].CongestionLevel)
	assert.Equal(t, 50.0, byID["cam-008"].AverageSpeedKmh)
}

func TestStaticSource_ClockStampsSnapshot(t *testing.T) {
	fixed := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	source := NewStaticSourceWithClock(func() time.Time { return fixed })

	snapshot, err := source.Snapshot(context.Background())

	require.NoError(t, err)
	assert.Equal(t, fixed, snapshot.TakenAt)
	for _, detection := range snapshot.Detections {
		assert.Equal(t, fixed, detection.DetectedAt)
	}
}

func TestStaticSource_SnapshotsAreIndependent(t *testing.T) {
	source := NewStaticSource()

	first, err := source.Snapshot(context.Background())
	require.NoError(t, err)
	second, err := source.Snapshot(context.Background())
	require.NoError(t, err)

	first.Detections[0].Severity = traffic.SeverityCritical
	assert.NotEqual(t, traffic.SeverityCritical, second.Detections[0].Severity,
		"mutating one snapshot must not leak into another")
}

func TestDensityFromCount(t *testing.T) {
	assert.Equal(t, 0.0, densityFromCount(0))
	assert.InDelta(t, 0.5, densityFromCount(20), 1e-9)
	assert.Equal(t, 1.0, densityFromCount(40))
	assert.Equal(t, 1.0, densityFromCount(90), "density saturates")
}

func TestCameraDoc_DerivesMissingCongestionFields(t *testing.T) {
	doc := cameraDoc{
		CameraID:     "cam-x",
		Name:         "Test Camera",
		Latitude:     37.77,
		Longitude:    -122.41,
		VehicleCount: 12,
	}

	observation := doc.toObservation()

	assert.Equal(t, traffic.CongestionModerate, observation.CongestionLevel)
	assert.Equal(t, 25.0, observation.AverageSpeedKmh)
}

func TestCameraDoc_KeepsExplicitCongestionFields(t *testing.T) {
	doc := cameraDoc{
		CameraID:        "cam-x",
		VehicleCount:    12,
		CongestionLevel: "HEAVY",
		AverageSpeedKmh: 18,
	}

	observation := doc.toObservation()

	assert.Equal(t, traffic.CongestionHeavy, observation.CongestionLevel)
	assert.Equal(t, 18.0, observation.AverageSpeedKmh)
}

func TestDetectionDoc_NormalizesPercentConfidence(t *testing.T) {
	doc := detectionDoc{
		CameraID:      "cam-x",
		DetectionType: "accident",
		Severity:      "high",
		Confidence:    92,
	}

	detection := doc.toDetection()

	assert.InDelta(t, 0.92, detection.Confidence, 1e-9)
	assert.Equal(t, traffic.DetectionAccident, detection.DetectionType)
	assert.Equal(t, traffic.SeverityHigh, detection.Severity)
}
