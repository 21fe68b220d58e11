package traffic

import (
	"sort"

	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/geo"
)

// Collector scans a snapshot for traffic issues near a straight-line route.
type Collector struct {
	thresholdKm float64
}

// NewCollector creates a Collector with the given near-route detour
// tolerance. A zero or negative threshold falls back to the default.
func NewCollector(thresholdKm float64) *Collector {
	if thresholdKm <= 0 {
		thresholdKm = geo.DefaultNearRouteThresholdKm
	}
	return &Collector{thresholdKm: thresholdKm}
}

// CollectIssues returns the traffic issues located near the straight-line
// route from start to end, sorted ascending by distance from start.
//
// For every camera within the proximity tolerance:
//   - each of its detections with severity above low becomes one issue;
//   - if its analytics record reports high congestion and the camera has no
//     issue yet, one synthetic congestion issue is added with high severity
//     and the analytics traffic density as confidence.
func (c *Collector) CollectIssues(start, end geo.Point, snapshot Snapshot) []Issue {
	analyticsByCamera := make(map[string]AnalyticsRecord, len(snapshot.Analytics))
	for _, record := range snapshot.Analytics {
		analyticsByCamera[record.CameraID] = record
	}

	detectionsByCamera := make(map[string][]Detection, len(snapshot.Detections))
	for _, detection := range snapshot.Detections {
		detectionsByCamera[detection.CameraID] = append(detectionsByCamera[detection.CameraID], detection)
	}

	var issues []Issue
	seenCameras := make(map[string]bool)

	for _, camera := range snapshot.Cameras {
		if !geo.IsNearRoute(camera.Position, start, end, c.thresholdKm) {
			continue
		}

		distanceFromStart := geo.DistanceKm(start, camera.Position)

		detections := detectionsByCamera[camera.ID]
		if len(detections) == 0 {
			// Cameras may also carry inline detections from the snapshot source
			detections = camera.Detections
		}

		for _, detection := range detections {
			if detection.Severity == SeverityLow {
				continue
			}
			issues = append(issues, Issue{
				CameraID:            camera.ID,
				CameraName:          camera.Name,
				DetectionType:       detection.DetectionType,
				Severity:            detection.Severity,
				Confidence:          NormalizeConfidence(detection.Confidence),
				DistanceFromStartKm: distanceFromStart,
			})
			seenCameras[camera.ID] = true
		}

		// Synthetic congestion issue for cameras the analytics pipeline
		// flags as highly congested, deduped against real detections.
		if record, ok := analyticsByCamera[camera.ID]; ok &&
			record.CongestionLevel == "high" && !seenCameras[camera.ID] {
			issues = append(issues, Issue{
				CameraID:            camera.ID,
				CameraName:          camera.Name,
				DetectionType:       DetectionCongestion,
				Severity:            SeverityHigh,
				Confidence:          record.TrafficDensity,
				DistanceFromStartKm: distanceFromStart,
			})
			seenCameras[camera.ID] = true
		}
	}

	sort.Slice(issues, func(i, j int) bool {
		return issues[i].DistanceFromStartKm < issues[j].DistanceFromStartKm
	})

	return issues
}
