// Package services composes the traffic libraries into the operations the
// HTTP layer exposes: route suggestions, bypass generation, camera
// snapshots, and the background refresh keeping those snapshots warm.
package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/cache"
	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/geo"
	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/routing"
	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/timeofday"
	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/traffic"
	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/pkg/logger"
)

// providerTimeout bounds the external directions call; everything else in a
// suggestion request is local computation.
const providerTimeout = 5 * time.Second

// RouteProvider supplies traffic-aware routes from an external directions
// service. *googleroutes.Client satisfies it.
type RouteProvider interface {
	ComputeRoutes(ctx context.Context, origin, destination geo.Point) ([]routing.ProviderRoute, error)
}

// SuggestionResult is the ranked outcome of one suggestion call.
type SuggestionResult struct {
	Routes       []routing.CandidateRoute `json:"routes"`
	Preference   timeofday.Preference     `json:"preference"`
	IssueCount   int                      `json:"issueCount"`
	FromProvider bool                     `json:"fromProvider"`
	GeneratedAt  time.Time                `json:"generatedAt"`
}

// SuggestionService runs the end-to-end suggestion flow. Every call is
// stateless given a snapshot; the service only holds collaborators.
type SuggestionService struct {
	collector   *traffic.Collector
	timeEngine  *timeofday.Engine
	estimator   *routing.MockRouteEstimator
	provider    RouteProvider     // nil runs fully synthetic
	legRouter   routing.LegRouter // nil falls back to mock bypass legs
	avgSpeedKmh float64
	resultCache *cache.Cache // nil disables result caching
	cacheTTL    time.Duration
}

// NewSuggestionService creates the orchestrator. provider and legRouter may
// be nil, which selects the synthetic path for routes and bypass legs; a
// nil resultCache disables suggestion caching. avgSpeedKmh <= 0 uses the
// default city speed.
func NewSuggestionService(collector *traffic.Collector, timeEngine *timeofday.Engine, estimator *routing.MockRouteEstimator, provider RouteProvider, legRouter routing.LegRouter, avgSpeedKmh float64, resultCache *cache.Cache, cacheTTL time.Duration) *SuggestionService {
	if avgSpeedKmh <= 0 {
		avgSpeedKmh = routing.AverageCitySpeedKmh
	}
	return &SuggestionService{
		collector:   collector,
		timeEngine:  timeEngine,
		estimator:   estimator,
		provider:    provider,
		legRouter:   legRouter,
		avgSpeedKmh: avgSpeedKmh,
		resultCache: resultCache,
		cacheTTL:    cacheTTL,
	}
}

// SuggestRoutes builds and ranks candidate routes between start and end
// against the given snapshot. Fresh cached results are served directly,
// which is how the pre-warmed corridor suggestions get picked up.
func (s *SuggestionService) SuggestRoutes(ctx context.Context, start, end geo.Point, snapshot traffic.Snapshot) (*SuggestionResult, error) {
	if !start.Valid() || !end.Valid() {
		return nil, fmt.Errorf("invalid coordinates: start=%v end=%v", start, end)
	}

	cacheKey := cache.SuggestionKey(start, end)
	if s.resultCache != nil {
		var cached SuggestionResult
		if found, err := s.resultCache.Get(cacheKey, &cached); err == nil && found {
			return &cached, nil
		}
	}

	pref := s.timeEngine.Current()
	issues := s.collector.CollectIssues(start, end, snapshot)
	density := issueAreaDensity(issues, snapshot)

	result, err := s.computeSuggestion(ctx, start, end, issues, pref, density)
	if err != nil {
		return nil, err
	}

	if s.resultCache != nil {
		if err := s.resultCache.Set(cacheKey, result, s.cacheTTL, "suggestions"); err != nil {
			logger.Get().Warn("failed to cache suggestion result", zap.Error(err))
		}
	}
	return result, nil
}

func (s *SuggestionService) computeSuggestion(ctx context.Context, start, end geo.Point, issues []traffic.Issue, pref timeofday.Preference, density float64) (*SuggestionResult, error) {
	if s.provider != nil {
		result, err := s.suggestFromProvider(ctx, start, end, issues, pref, density)
		if err == nil {
			return result, nil
		}
		logger.Get().Warn("directions provider failed, using synthetic routes",
			zap.Error(err))
	}
	return s.suggestSynthetic(start, end, issues, pref, density), nil
}

// suggestSynthetic is the provider-free flow: straight-line primary, and
// corridor alternates only when the primary has issues.
func (s *SuggestionService) suggestSynthetic(start, end geo.Point, issues []traffic.Issue, pref timeofday.Preference, density float64) *SuggestionResult {
	primary := routing.NewPrimaryRouteAtSpeed(start, end, s.avgSpeedKmh)
	primary.TrafficIssues = issues

	candidates := []routing.CandidateRoute{primary}
	if len(issues) > 0 {
		// Alternates slower than the primary plus the per-issue penalty
		// are not worth proposing.
		cutoff := primary.EstimatedTimeMin + 5*float64(len(issues))
		for _, alternate := range routing.GenerateAlternates(start, end, primary, s.estimator) {
			if alternate.EstimatedTimeMin < cutoff {
				candidates = append(candidates, alternate)
			}
		}
	}

	s.scoreAndSort(candidates, pref, density)

	return &SuggestionResult{
		Routes:      candidates,
		Preference:  pref,
		IssueCount:  len(issues),
		GeneratedAt: time.Now(),
	}
}

// suggestFromProvider ranks the provider's own routes, annotating each with
// the highway heuristic from its summary.
func (s *SuggestionService) suggestFromProvider(ctx context.Context, start, end geo.Point, issues []traffic.Issue, pref timeofday.Preference, density float64) (*SuggestionResult, error) {
	providerCtx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()

	providerRoutes, err := s.provider.ComputeRoutes(providerCtx, start, end)
	if err != nil {
		return nil, err
	}
	if len(providerRoutes) == 0 {
		return nil, fmt.Errorf("provider returned no routes")
	}

	candidates := make([]routing.CandidateRoute, 0, len(providerRoutes))
	for i, route := range providerRoutes {
		candidate := routing.NewPrimaryRoute(start, end)
		candidate.Name = route.Summary
		if candidate.Name == "" {
			candidate.Name = fmt.Sprintf("Route %d", i+1)
		}
		candidate.DistanceKm = route.DistanceKm
		candidate.EstimatedTimeMin = route.TimeMin
		if len(route.Path) >= 2 {
			candidate.Path = route.Path
		}
		candidate.IsAlternate = i > 0
		candidate.UsesHighway = routing.UsesHighwayHint(route.Summary)
		candidate.TrafficIssues = issues
		if i > 0 {
			candidate.TimeSavingsMin = providerRoutes[0].TimeMin - route.TimeMin
		}
		candidates = append(candidates, candidate)
	}

	s.scoreAndSort(candidates, pref, density)

	return &SuggestionResult{
		Routes:       candidates,
		Preference:   pref,
		IssueCount:   len(issues),
		FromProvider: true,
		GeneratedAt:  time.Now(),
	}, nil
}

// scoreAndSort attaches scores and orders candidates best-first. Sorting is
// stable so equally scored routes keep their generation order.
func (s *SuggestionService) scoreAndSort(candidates []routing.CandidateRoute, pref timeofday.Preference, density float64) {
	for i := range candidates {
		candidates[i].Score = routing.Score(routing.ScoreInput{
			DistanceKm:       candidates[i].DistanceKm,
			EstimatedTimeMin: candidates[i].EstimatedTimeMin,
			UsesHighway:      candidates[i].UsesHighway,
			IssueCount:       len(candidates[i].TrafficIssues),
		}, pref, density)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
}

// Bypasses generates detours around a congested point. The provider-backed
// leg router is optional; without it the figures come from the seeded mock.
func (s *SuggestionService) Bypasses(ctx context.Context, center geo.Point) ([]routing.BypassRoute, error) {
	if !center.Valid() {
		return nil, fmt.Errorf("invalid coordinates: %v", center)
	}

	cacheKey := cache.BypassKey(center)
	if s.resultCache != nil {
		var cached []routing.BypassRoute
		if found, err := s.resultCache.Get(cacheKey, &cached); err == nil && found {
			return cached, nil
		}
	}

	bypasses := routing.GenerateBypasses(ctx, center, s.estimator, s.legRouter)

	if s.resultCache != nil {
		if err := s.resultCache.Set(cacheKey, bypasses, s.cacheTTL, "bypasses"); err != nil {
			logger.Get().Warn("failed to cache bypass routes", zap.Error(err))
		}
	}
	return bypasses, nil
}

// TimeStatus reports the current day/night state for the dashboard clock.
func (s *SuggestionService) TimeStatus() (timeofday.Status, timeofday.Preference) {
	return s.timeEngine.CurrentStatus(), s.timeEngine.Current()
}

// issueAreaDensity averages the analytics density of the cameras that
// produced issues. With no issues or no analytics the scorer's default
// applies.
func issueAreaDensity(issues []traffic.Issue, snapshot traffic.Snapshot) float64 {
	if len(issues) == 0 || len(snapshot.Analytics) == 0 {
		return routing.DefaultTrafficDensity
	}

	densityByCamera := make(map[string]float64, len(snapshot.Analytics))
	for _, record := range snapshot.Analytics {
		densityByCamera[record.CameraID] = record.TrafficDensity
	}

	var sum float64
	var count int
	seen := make(map[string]bool, len(issues))
	for _, issue := range issues {
		if seen[issue.CameraID] {
			continue
		}
		seen[issue.CameraID] = true
		if density, ok := densityByCamera[issue.CameraID]; ok {
			sum += density
			count++
		}
	}
	if count == 0 {
		return routing.DefaultTrafficDensity
	}
	return sum / float64(count)
}
