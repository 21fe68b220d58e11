// Package traffic holds the camera, detection, and analytics records the
// route suggestion engine consumes, plus the collector that locates traffic
// issues near a candidate route.
package traffic

import (
	"time"

	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/geo"
)

// CongestionLevel is the discrete traffic-density bucket reported by the
// congestion model for a camera's field of view.
type CongestionLevel string

const (
	CongestionFreeFlow   CongestionLevel = "FREE_FLOW"
	CongestionLight      CongestionLevel = "LIGHT"
	CongestionModerate   CongestionLevel = "MODERATE"
	CongestionHeavy      CongestionLevel = "HEAVY"
	CongestionTrafficJam CongestionLevel = "TRAFFIC_JAM"
)

// Bucket collapses the five model levels into the low/medium/high buckets
// the analytics records and the issue collector work with.
func (c CongestionLevel) Bucket() string {
	switch c {
	case CongestionFreeFlow, CongestionLight:
		return "low"
	case CongestionModerate:
		return "medium"
	case CongestionHeavy, CongestionTrafficJam:
		return "high"
	default:
		return "low"
	}
}

// DetectionType identifies what the ML pipeline saw in a camera frame.
type DetectionType string

const (
	DetectionCongestion         DetectionType = "congestion"
	DetectionAccident           DetectionType = "accident"
	DetectionStalledVehicle     DetectionType = "stalled-vehicle"
	DetectionDebris             DetectionType = "debris"
	DetectionPedestrianCrossing DetectionType = "pedestrian-crossing"
)

// Severity grades a detection.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// CameraObservation is an immutable snapshot of a traffic camera. The
// suggestion engine treats it as read-only input per invocation.
type CameraObservation struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Position        geo.Point       `json:"position"`
	CongestionLevel CongestionLevel `json:"congestionLevel"`
	VehicleCount    int             `json:"vehicleCount"`
	AverageSpeedKmh float64         `json:"averageSpeedKmh"`
	Detections      []Detection     `json:"detections"`
}

// Detection is a single event produced by the ML pipeline for a camera.
type Detection struct {
	CameraID      string        `json:"cameraId"`
	DetectionType DetectionType `json:"detectionType"`
	Severity      Severity      `json:"severity"`
	// Confidence is normalized to [0,1]; feeds that report percentages are
	// scaled down on ingest. See NormalizeConfidence.
	Confidence float64   `json:"confidence"`
	DetectedAt time.Time `json:"detectedAt,omitempty"`
}

// AnalyticsRecord is the per-camera aggregate the analytics pipeline keeps.
type AnalyticsRecord struct {
	CameraID string `json:"cameraId"`
	// CongestionLevel is the low/medium/high bucket.
	CongestionLevel string `json:"congestionLevel"`
	// TrafficDensity is a [0,1] density estimate.
	TrafficDensity float64 `json:"trafficDensity"`
}

// Snapshot bundles the camera, detection, and analytics records for one
// suggestion call. Snapshots are supplied by a store or feed adapter and
// never mutated by the engine.
type Snapshot struct {
	Cameras    []CameraObservation `json:"cameras"`
	Detections []Detection         `json:"detections"`
	Analytics  []AnalyticsRecord   `json:"analytics"`
	TakenAt    time.Time           `json:"takenAt"`
}

// Issue is a traffic problem located near a candidate route, positioned by
// its distance from the route's start. Derived and recomputed every call.
type Issue struct {
	CameraID            string        `json:"cameraId"`
	CameraName          string        `json:"cameraName"`
	DetectionType       DetectionType `json:"detectionType"`
	Severity            Severity      `json:"severity"`
	Confidence          float64       `json:"confidence"`
	DistanceFromStartKm float64       `json:"distanceFromStartKm"`
}

// NormalizeConfidence maps confidences reported on a 0-100 scale down to
// [0,1]. Values already in [0,1] pass through unchanged.
func NormalizeConfidence(confidence float64) float64 {
	if confidence > 1 {
		return confidence / 100
	}
	return confidence
}

// ClassifyCongestion buckets a vehicle count into a congestion level and an
// estimated average speed, mirroring the congestion model's thresholds.
func ClassifyCongestion(vehicleCount int) (CongestionLevel, float64) {
	switch {
	case vehicleCount == 0:
		return CongestionFreeFlow, 50.0
	case vehicleCount <= 5:
		return CongestionLight, 35.0
	case vehicleCount <= 15:
		return CongestionModerate, 25.0
	case vehicleCount <= 30:
		return CongestionHeavy, 15.0
	default:
		return CongestionTrafficJam, 5.0
	}
}
