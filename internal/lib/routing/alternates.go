package routing

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/geo"
)

// alternateOffsetDeg is the per-step corridor offset, in degrees, applied
// to the intermediate waypoints of a synthesized alternate.
const alternateOffsetDeg = 0.02

// NewPrimaryRoute builds the direct route between two points: Haversine
// distance and a time estimate at the default city speed.
func NewPrimaryRoute(start, end geo.Point) CandidateRoute {
	return NewPrimaryRouteAtSpeed(start, end, AverageCitySpeedKmh)
}

// NewPrimaryRouteAtSpeed builds the direct route with the time estimate
// taken at the given average speed, typically the configured one.
func NewPrimaryRouteAtSpeed(start, end geo.Point, speedKmh float64) CandidateRoute {
	distance := geo.DistanceKm(start, end)
	return CandidateRoute{
		ID:               uuid.NewString(),
		Name:             "Primary Route",
		DistanceKm:       distance,
		EstimatedTimeMin: EstimateTimeAtSpeedMin(distance, speedKmh),
		Path:             []geo.Point{start, end},
	}
}

// GenerateAlternates synthesizes two corridor alternates around the primary
// route. Alternate i shifts two intermediate waypoints by (i+1)*0.02 degrees
// and scales the primary's distance and time by a jitter factor in
// [0.95, 1.05). The figures are placeholders from the estimator, not real
// routing output; endpoints are never changed.
func GenerateAlternates(start, end geo.Point, primary CandidateRoute, estimator *MockRouteEstimator) []CandidateRoute {
	alternates := make([]CandidateRoute, 0, 2)

	for i := 0; i < 2; i++ {
		offset := float64(i+1) * alternateOffsetDeg

		factor := estimator.Jitter()
		distance := primary.DistanceKm * factor
		timeMin := primary.EstimatedTimeMin * factor

		alternates = append(alternates, CandidateRoute{
			ID:               uuid.NewString(),
			Name:             fmt.Sprintf("Alternate Route %d", i+1),
			DistanceKm:       distance,
			EstimatedTimeMin: timeMin,
			Path: []geo.Point{
				start,
				geo.Offset(start, offset, offset),
				geo.Offset(end, -offset, -offset),
				end,
			},
			IsAlternate: true,
			// Negative when the alternate is slower than the primary.
			TimeSavingsMin: primary.EstimatedTimeMin - timeMin,
		})
	}

	return alternates
}
