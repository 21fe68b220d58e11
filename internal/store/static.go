package store

import (
	"context"
	"math"
	"time"

	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/geo"
	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/traffic"
)

// staticCamera seeds one camera in the development dataset.
type staticCamera struct {
	id           string
	name         string
	lat, lng     float64
	vehicleCount int
}

// The seeded corridor runs along Market Street and the 101 approach in
// San Francisco, with a congested cluster downtown.
var staticCameras = []staticCamera{
	{"cam-001", "Market & Embarcadero", 37.7938, -122.3950, 4},
	{"cam-002", "Market & Montgomery", 37.7894, -122.4017, 12},
	{"cam-003", "Market & 5th", 37.7837, -122.4089, 34},
	{"cam-004", "Market & Van Ness", 37.7752, -122.4193, 18},
	{"cam-005", "Mission & 16th", 37.7649, -122.4194, 9},
	{"cam-006", "Cesar Chavez & 101", 37.7484, -122.4053, 27},
	{"cam-007", "Bayshore & Silver", 37.7344, -122.4050, 2},
	{"cam-008", "Alemany & Seneca", 37.7213, -122.4385, 0},
}

// staticDetections are the open events the seeded analytics pipeline has
// produced for the corridor.
var staticDetections = []traffic.Detection{
	{CameraID: "cam-003", DetectionType: traffic.DetectionAccident, Severity: traffic.SeverityHigh, Confidence: 0.92},
	{CameraID: "cam-003", DetectionType: traffic.DetectionCongestion, Severity: traffic.SeverityMedium, Confidence: 0.81},
	{CameraID: "cam-004", DetectionType: traffic.DetectionStalledVehicle, Severity: traffic.SeverityMedium, Confidence: 0.77},
	{CameraID: "cam-006", DetectionType: traffic.DetectionDebris, Severity: traffic.SeverityLow, Confidence: 0.64},
}

// StaticSource serves a fixed snapshot derived from the seeded cameras.
// It backs development runs and the demo configuration.
type StaticSource struct {
	now func() time.Time
}

// NewStaticSource creates a static snapshot source.
func NewStaticSource() *StaticSource {
	return &StaticSource{now: time.Now}
}

// NewStaticSourceWithClock creates a static source with an injected clock.
func NewStaticSourceWithClock(now func() time.Time) *StaticSource {
	return &StaticSource{now: now}
}

// Snapshot builds the seeded snapshot. Congestion levels, speeds, and
// analytics records are derived from the seeded vehicle counts so the
// dataset stays internally consistent.
func (s *StaticSource) Snapshot(ctx context.Context) (traffic.Snapshot, error) {
	takenAt := s.now()

	cameras := make([]traffic.CameraObservation, 0, len(staticCameras))
	analytics := make([]traffic.AnalyticsRecord, 0, len(staticCameras))
	for _, seed := range staticCameras {
		level, avgSpeed := traffic.ClassifyCongestion(seed.vehicleCount)
		cameras = append(cameras, traffic.CameraObservation{
			ID:              seed.id,
			Name:            seed.name,
			Position:        geo.Point{Latitude: seed.lat, Longitude: seed.lng},
			CongestionLevel: level,
			VehicleCount:    seed.vehicleCount,
			AverageSpeedKmh: avgSpeed,
		})
		analytics = append(analytics, traffic.AnalyticsRecord{
			CameraID:        seed.id,
			CongestionLevel: level.Bucket(),
			TrafficDensity:  densityFromCount(seed.vehicleCount),
		})
	}

	detections := make([]traffic.Detection, len(staticDetections))
	copy(detections, staticDetections)
	for i := range detections {
		detections[i].DetectedAt = takenAt
	}

	return traffic.Snapshot{
		Cameras:    cameras,
		Detections: detections,
		Analytics:  analytics,
		TakenAt:    takenAt,
	}, nil
}

// densityFromCount maps a vehicle count to a [0,1] density estimate,
// saturating at 40 vehicles.
func densityFromCount(vehicleCount int) float64 {
	return math.Min(1, float64(vehicleCount)/40)
}
