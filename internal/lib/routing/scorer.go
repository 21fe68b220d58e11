package routing

import (
	"math"

	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/timeofday"
)

// DefaultTrafficDensity is assumed when no analytics density is available.
const DefaultTrafficDensity = 0.5

// ScoreInput carries the route metrics the scorer reads.
type ScoreInput struct {
	DistanceKm       float64
	EstimatedTimeMin float64
	UsesHighway      bool
	IssueCount       int
}

// Score computes the composite score for a candidate route. Higher is
// better. The result is floored at zero but has no upper clamp, and the
// function is a pure weighted sum: identical inputs always produce the
// identical score.
//
// By day (fastest) short travel time dominates and highways earn a bonus on
// short routes; by night (safest) highways earn a larger flat bonus while
// issues and very long distances are penalized harder.
func Score(in ScoreInput, pref timeofday.Preference, trafficDensity float64) float64 {
	issues := float64(in.IssueCount)

	score := math.Max(0, 100-2*in.EstimatedTimeMin) * 0.4
	score += math.Max(0, 100-10*in.DistanceKm) * 0.3

	if pref.Preference == timeofday.PreferFastest {
		score += math.Max(0, 50-10*issues)
		if in.UsesHighway && in.DistanceKm < 50 {
			score += 20
		}
	} else {
		if in.UsesHighway {
			score += 40
		}
		score -= 25 * issues
		if in.DistanceKm > 100 {
			score -= 10
		}
	}

	switch {
	case trafficDensity > 0.7:
		score -= 15
	case trafficDensity < 0.3:
		score += 10
	}

	return math.Max(0, score)
}
