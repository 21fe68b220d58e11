package routing

import (
	"math"
	"math/rand"
)

// AverageCitySpeedKmh is the default speed assumption used when estimating
// travel time from straight-line distance.
const AverageCitySpeedKmh = 40.0

// MockRouteEstimator supplies the placeholder distance/time figures used
// when no external directions provider is available. It is seeded so tests
// can assert exact outputs; production wiring seeds it from the clock.
type MockRouteEstimator struct {
	rng *rand.Rand
}

// NewMockRouteEstimator creates an estimator with the given seed.
func NewMockRouteEstimator(seed int64) *MockRouteEstimator {
	return &MockRouteEstimator{rng: rand.New(rand.NewSource(seed))}
}

// Jitter returns a scaling factor in [0.95, 1.05) applied to the primary
// route's distance and time when synthesizing an alternate. The figures it
// produces are placeholders, not routing results.
func (e *MockRouteEstimator) Jitter() float64 {
	return 0.95 + e.rng.Float64()*0.1
}

// BypassLeg fabricates the distance and time for a mock bypass leg. Times
// land between the clear and just-past-congested baselines so savings and
// delay both occur across seeds.
func (e *MockRouteEstimator) BypassLeg() (distanceKm, timeMin float64) {
	distanceKm = 2.0 + e.rng.Float64()*2.5
	timeMin = math.Round(clearBaselineMin + e.rng.Float64()*4)
	return distanceKm, timeMin
}

// EstimateTimeMin converts a distance to minutes at the default city speed.
func EstimateTimeMin(distanceKm float64) float64 {
	return EstimateTimeAtSpeedMin(distanceKm, AverageCitySpeedKmh)
}

// EstimateTimeAtSpeedMin converts a distance to minutes at the given average
// speed. Non-positive speeds fall back to the default city speed.
func EstimateTimeAtSpeedMin(distanceKm, speedKmh float64) float64 {
	if speedKmh <= 0 {
		speedKmh = AverageCitySpeedKmh
	}
	return math.Round(distanceKm / speedKmh * 60)
}
