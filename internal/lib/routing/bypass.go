package routing

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/geo"
)

const (
	// congestedBaselineMin is the assumed time through the congested point.
	congestedBaselineMin = 8.0
	// clearBaselineMin is the assumed time through the same area when clear.
	clearBaselineMin = 5.0
	// bypassOffsetDegPerRadius converts a direction's radius into degrees
	// of waypoint offset. The radius shapes the mock path only; it is not
	// a distance in kilometers.
	bypassOffsetDegPerRadius = 0.01
)

// BypassDirection is one compass direction a bypass can route through.
type BypassDirection struct {
	Name      string
	LatOffset float64
	LngOffset float64
	Radius    float64
}

// bypassDirections covers the four cardinal directions at radius 3 and the
// four diagonals at radius 2, for up to eight bypasses per congested area.
var bypassDirections = []BypassDirection{
	{Name: "North", LatOffset: 1, LngOffset: 0, Radius: 3},
	{Name: "South", LatOffset: -1, LngOffset: 0, Radius: 3},
	{Name: "East", LatOffset: 0, LngOffset: 1, Radius: 3},
	{Name: "West", LatOffset: 0, LngOffset: -1, Radius: 3},
	{Name: "Northeast", LatOffset: 1, LngOffset: 1, Radius: 2},
	{Name: "Northwest", LatOffset: 1, LngOffset: -1, Radius: 2},
	{Name: "Southeast", LatOffset: -1, LngOffset: 1, Radius: 2},
	{Name: "Southwest", LatOffset: -1, LngOffset: -1, Radius: 2},
}

// BypassRoute is a named detour around a single congested point.
type BypassRoute struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Direction    string      `json:"direction"`
	Path         []geo.Point `json:"path"`
	DistanceKm   float64     `json:"distanceKm"`
	TimeMin      float64     `json:"timeMin"`
	SavingsMin   float64     `json:"savingsMin"`
	DelayMin     float64     `json:"delayMin"`
	FromProvider bool        `json:"fromProvider"`
}

// GenerateBypasses produces up to eight bypasses around a congested point,
// one per compass direction. When a LegRouter is available each bypass is
// routed through the provider; a nil router or a provider error falls back
// to the estimator's mock figures for that direction.
func GenerateBypasses(ctx context.Context, center geo.Point, estimator *MockRouteEstimator, router LegRouter) []BypassRoute {
	bypasses := make([]BypassRoute, 0, len(bypassDirections))
	for _, direction := range bypassDirections {
		if bypass := GenerateBypass(ctx, center, direction, estimator, router); bypass != nil {
			bypasses = append(bypasses, *bypass)
		}
	}
	return bypasses
}

// GenerateBypass builds a single bypass around center through the given
// compass direction.
func GenerateBypass(ctx context.Context, center geo.Point, direction BypassDirection, estimator *MockRouteEstimator, router LegRouter) *BypassRoute {
	step := direction.Radius * bypassOffsetDegPerRadius
	waypoint := geo.Offset(center, direction.LatOffset*step, direction.LngOffset*step)

	// Entry and exit sit on the perpendicular through the congested point,
	// so the path arcs around it rather than through it.
	entry := geo.Offset(center, -direction.LngOffset*step/2, direction.LatOffset*step/2)
	exit := geo.Offset(center, direction.LngOffset*step/2, -direction.LatOffset*step/2)

	bypass := &BypassRoute{
		ID:        uuid.NewString(),
		Name:      direction.Name + " Bypass",
		Direction: direction.Name,
		Path:      []geo.Point{entry, waypoint, exit},
	}

	if router != nil {
		if leg, err := router.RouteVia(ctx, entry, waypoint, exit); err == nil && leg != nil {
			bypass.DistanceKm = leg.DistanceMeters / 1000
			bypass.TimeMin = math.Round(leg.DurationSeconds / 60)
			bypass.SavingsMin = math.Max(0, congestedBaselineMin-bypass.TimeMin)
			bypass.DelayMin = math.Max(0, bypass.TimeMin-clearBaselineMin)
			bypass.FromProvider = true
			if len(leg.Path) > 0 {
				bypass.Path = leg.Path
			}
			return bypass
		}
		// Provider unavailable or failed: degrade to the mock figures.
	}

	distanceKm, timeMin := estimator.BypassLeg()
	bypass.DistanceKm = distanceKm
	bypass.TimeMin = timeMin
	bypass.SavingsMin = math.Max(0, congestedBaselineMin-timeMin)
	bypass.DelayMin = math.Max(0, timeMin-clearBaselineMin)
	return bypass
}
