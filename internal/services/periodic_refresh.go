package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/config"
	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/traffic"
	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/pkg/logger"
)

// PeriodicRefreshService keeps the camera snapshot cache warm by hitting
// the camera service on a ticker, so request paths rarely block on the
// backing store. After each refresh it re-runs the suggestion flow for the
// monitored corridors, so dashboard requests for those pairs hit the
// suggestion cache.
type PeriodicRefreshService struct {
	cameras     *CameraService
	suggestions *SuggestionService // nil skips corridor pre-warming
	corridors   []config.Corridor
	interval    time.Duration

	mu       sync.Mutex
	stopChan chan struct{}
	running  bool
}

// NewPeriodicRefreshService creates the refresh service.
func NewPeriodicRefreshService(cameras *CameraService, suggestions *SuggestionService, corridors []config.Corridor, interval time.Duration) *PeriodicRefreshService {
	return &PeriodicRefreshService{
		cameras:     cameras,
		suggestions: suggestions,
		corridors:   corridors,
		interval:    interval,
	}
}

// Start begins periodic snapshot refreshes. Calling Start on a running
// service is a no-op; a stopped service can be started again.
func (p *PeriodicRefreshService) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}
	p.running = true
	p.stopChan = make(chan struct{})

	logger.Get().Info("starting periodic snapshot refresh",
		zap.Duration("interval", p.interval),
		zap.Int("corridors", len(p.corridors)))

	go p.refreshLoop(ctx, p.stopChan)
}

// Stop gracefully stops the refresh loop.
func (p *PeriodicRefreshService) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return
	}
	p.running = false
	close(p.stopChan)
	logger.Get().Info("stopped periodic snapshot refresh")
}

// IsRunning reports whether the refresh loop is active.
func (p *PeriodicRefreshService) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *PeriodicRefreshService) refreshLoop(ctx context.Context, stop <-chan struct{}) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Warm the cache immediately on startup.
	p.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Get().Info("periodic refresh stopping: context cancelled")
			return
		case <-stop:
			return
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

// refresh touches the snapshot path, which re-fetches when the cached
// snapshot has gone stale and is a cheap cache read otherwise, then
// pre-warms the corridor suggestions against the fresh snapshot.
func (p *PeriodicRefreshService) refresh(ctx context.Context) {
	refreshCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	snapshot, err := p.cameras.Snapshot(refreshCtx)
	if err != nil {
		logger.Get().Warn("periodic snapshot refresh failed", zap.Error(err))
		return
	}

	p.prewarmCorridors(refreshCtx, snapshot)
}

func (p *PeriodicRefreshService) prewarmCorridors(ctx context.Context, snapshot traffic.Snapshot) {
	if p.suggestions == nil {
		return
	}
	for _, corridor := range p.corridors {
		_, err := p.suggestions.SuggestRoutes(ctx, corridor.Origin.ToPoint(), corridor.Destination.ToPoint(), snapshot)
		if err != nil {
			logger.Get().Warn("corridor pre-warm failed",
				zap.String("corridor", corridor.Name), zap.Error(err))
		}
	}
}
