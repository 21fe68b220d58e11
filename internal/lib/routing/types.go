// Package routing generates, and scores, candidate routes between two
// points: the straight-line primary, corridor alternates around it, and
// compass bypasses around a single congested point.
package routing

import (
	"context"
	"strings"

	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/geo"
	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/traffic"
)

// CandidateRoute is a route proposed to the caller. Routes are built fresh
// on every suggestion call and only mutated to attach a score.
type CandidateRoute struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	DistanceKm       float64         `json:"distanceKm"`
	EstimatedTimeMin float64         `json:"estimatedTimeMin"`
	Path             []geo.Point     `json:"path"`
	TrafficIssues    []traffic.Issue `json:"trafficIssues"`
	IsAlternate      bool            `json:"isAlternate"`
	TimeSavingsMin   float64         `json:"timeSavingsMin,omitempty"`
	Score            float64         `json:"score,omitempty"`
	UsesHighway      bool            `json:"usesHighway,omitempty"`
}

// ProviderRoute is one route returned by an external directions provider.
type ProviderRoute struct {
	Summary    string
	DistanceKm float64
	TimeMin    float64
	Path       []geo.Point
}

// ProviderLeg is a single routed leg from an external directions provider,
// used when computing bypasses around a congested point.
type ProviderLeg struct {
	DistanceMeters  float64
	DurationSeconds float64
	Path            []geo.Point
}

// LegRouter routes origin -> via -> destination through an external
// directions provider. Implementations live in the clients layer.
type LegRouter interface {
	RouteVia(ctx context.Context, origin, via, destination geo.Point) (*ProviderLeg, error)
}

// highwayKeywords drive the summary heuristic for provider routes. Provider
// summaries are short road names ("US-101 S", "I-280 N", "Lincoln Hwy").
var highwayKeywords = []string{"highway", "hwy", "freeway", "expressway", "interstate", "i-", "us-"}

// UsesHighwayHint reports whether a route summary looks like a highway
// route. This is a keyword heuristic, not a road-class lookup.
func UsesHighwayHint(summary string) bool {
	lower := strings.ToLower(summary)
	for _, keyword := range highwayKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
