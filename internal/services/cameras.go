package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/cache"
	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/clients/camerafeed"
	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/traffic"
	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/store"
	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/pkg/logger"
)

// ErrCameraNotFound is returned when a camera ID does not exist in the
// current snapshot.
var ErrCameraNotFound = errors.New("camera not found")

// CameraService serves traffic snapshots cache-first. When the backing
// source fails, a stale cached snapshot is served until it is very stale.
type CameraService struct {
	source          store.SnapshotSource
	feed            *camerafeed.Client // optional KML feed merged into the snapshot
	cache           *cache.Cache
	refreshInterval time.Duration
}

// NewCameraService creates the camera service. feed may be nil.
func NewCameraService(source store.SnapshotSource, feed *camerafeed.Client, c *cache.Cache, refreshInterval time.Duration) *CameraService {
	return &CameraService{
		source:          source,
		feed:            feed,
		cache:           c,
		refreshInterval: refreshInterval,
	}
}

// Snapshot returns the current traffic snapshot, refreshing the cache when
// it has gone stale.
func (s *CameraService) Snapshot(ctx context.Context) (traffic.Snapshot, error) {
	var cached traffic.Snapshot
	found, err := s.cache.Get(cache.SnapshotKey, &cached)
	if err != nil {
		logger.Get().Warn("snapshot cache read failed", zap.Error(err))
	}
	if found {
		return cached, nil
	}

	snapshot, err := s.refreshSnapshot(ctx)
	if err != nil {
		// Refresh failed; serve the stale snapshot if it is not too old.
		entry, exists, readErr := s.cache.GetWithMetadata(cache.SnapshotKey, &cached)
		if readErr == nil && exists && !s.cache.IsVeryStale(cache.SnapshotKey) {
			logger.Get().Warn("snapshot refresh failed, serving stale data",
				zap.Error(err), zap.Time("cachedAt", entry.CreatedAt))
			return cached, nil
		}
		return traffic.Snapshot{}, fmt.Errorf("failed to refresh snapshot: %w", err)
	}

	if err := s.cache.Set(cache.SnapshotKey, snapshot, s.refreshInterval, "snapshot"); err != nil {
		logger.Get().Warn("failed to cache snapshot", zap.Error(err))
	}
	return snapshot, nil
}

// refreshSnapshot pulls the snapshot from the source and merges in any
// cameras from the KML feed that the source does not already know.
func (s *CameraService) refreshSnapshot(ctx context.Context) (traffic.Snapshot, error) {
	snapshot, err := s.source.Snapshot(ctx)
	if err != nil {
		return traffic.Snapshot{}, err
	}

	if s.feed != nil {
		feedCameras, err := s.feed.FetchCameras(ctx)
		if err != nil {
			// The feed is supplementary; losing it degrades, not fails.
			logger.Get().Warn("camera feed fetch failed", zap.Error(err))
		} else {
			snapshot.Cameras = mergeCameras(snapshot.Cameras, feedCameras)
		}
	}

	return snapshot, nil
}

// ListCameras returns every camera in the current snapshot.
func (s *CameraService) ListCameras(ctx context.Context) ([]traffic.CameraObservation, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.Cameras, nil
}

// GetCamera returns one camera by ID.
func (s *CameraService) GetCamera(ctx context.Context, id string) (*traffic.CameraObservation, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	for i := range snapshot.Cameras {
		if snapshot.Cameras[i].ID == id {
			return &snapshot.Cameras[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrCameraNotFound, id)
}

// mergeCameras appends feed cameras whose IDs the source snapshot does not
// already carry. Source records win on conflict.
func mergeCameras(existing, feed []traffic.CameraObservation) []traffic.CameraObservation {
	known := make(map[string]bool, len(existing))
	for _, camera := range existing {
		known[camera.ID] = true
	}
	merged := existing
	for _, camera := range feed {
		if !known[camera.ID] {
			merged = append(merged, camera)
		}
	}
	return merged
}
