// Package cache provides a thread-safe in-memory TTL cache for traffic
// snapshots and computed suggestions. Entries past their TTL are stale but
// retrievable with metadata, so callers can serve stale data when the
// upstream source is down.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/geo"
	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/pkg/logger"
)

// SnapshotKey is the cache key for the current traffic snapshot.
const SnapshotKey = "traffic_snapshot"

// Cache provides thread-safe in-memory caching with TTL.
type Cache struct {
	entries map[string]*Entry
	mutex   sync.RWMutex
}

// Entry is a cached item with freshness metadata.
type Entry struct {
	Key             string        `json:"key"`
	Data            []byte        `json:"data"`
	CreatedAt       time.Time     `json:"createdAt"`
	ExpiresAt       time.Time     `json:"expiresAt"`
	RefreshInterval time.Duration `json:"refreshInterval"`
	Source          string        `json:"source"`
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		entries: make(map[string]*Entry),
	}
}

// Set stores data with a TTL equal to the refresh interval.
func (c *Cache) Set(key string, data interface{}, refreshInterval time.Duration, source string) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data for cache: %w", err)
	}

	now := time.Now()
	entry := &Entry{
		Key:             key,
		Data:            jsonData,
		CreatedAt:       now,
		ExpiresAt:       now.Add(refreshInterval),
		RefreshInterval: refreshInterval,
		Source:          source,
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = entry
	return nil
}

// Get retrieves fresh data. Stale or missing entries report found=false.
func (c *Cache) Get(key string, result interface{}) (bool, error) {
	c.mutex.RLock()
	entry, exists := c.entries[key]
	c.mutex.RUnlock()

	if !exists {
		return false, nil
	}

	if c.IsStale(key) {
		return false, nil
	}

	if err := json.Unmarshal(entry.Data, result); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached data: %w", err)
	}

	return true, nil
}

// GetWithMetadata retrieves data and freshness metadata regardless of
// staleness; the caller decides whether stale data is acceptable.
func (c *Cache) GetWithMetadata(key string, result interface{}) (*Entry, bool, error) {
	c.mutex.RLock()
	entry, exists := c.entries[key]
	c.mutex.RUnlock()

	if !exists {
		return nil, false, nil
	}

	if result != nil {
		if err := json.Unmarshal(entry.Data, result); err != nil {
			return entry, exists, fmt.Errorf("failed to unmarshal cached data: %w", err)
		}
	}

	return entry, exists, nil
}

// IsStale reports whether the entry is past its expiration. Missing
// entries are stale.
func (c *Cache) IsStale(key string) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.entries[key]
	if !exists {
		return true
	}

	return time.Now().After(entry.ExpiresAt)
}

// IsVeryStale reports whether the entry is past twice its refresh
// interval, the point where stale-data fallback stops being served.
func (c *Cache) IsVeryStale(key string) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.entries[key]
	if !exists {
		return true
	}

	veryStaleThreshold := entry.CreatedAt.Add(entry.RefreshInterval * 2)
	return time.Now().After(veryStaleThreshold)
}

// Delete removes an entry.
func (c *Cache) Delete(key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.entries, key)
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]*Entry)
}

// Keys returns all cache keys.
func (c *Cache) Keys() []string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	return keys
}

// Stats returns cache usage statistics.
func (c *Cache) Stats() Stats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	now := time.Now()
	stats := Stats{
		TotalEntries: len(c.entries),
	}

	for _, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			stats.StaleEntries++
		} else {
			stats.FreshEntries++
		}

		if stats.OldestEntry.IsZero() || entry.CreatedAt.Before(stats.OldestEntry) {
			stats.OldestEntry = entry.CreatedAt
		}
		if entry.CreatedAt.After(stats.NewestEntry) {
			stats.NewestEntry = entry.CreatedAt
		}
	}

	return stats
}

// Stats summarizes cache freshness.
type Stats struct {
	TotalEntries int
	FreshEntries int
	StaleEntries int
	OldestEntry  time.Time
	NewestEntry  time.Time
}

// CleanupStale removes all stale entries and returns how many went.
func (c *Cache) CleanupStale() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	var removed int

	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
			removed++
		}
	}

	return removed
}

// StartPeriodicCleanup runs stale-entry cleanup on a ticker until the
// context is cancelled.
func (c *Cache) StartPeriodicCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Get().Error("cache cleanup recovered from panic", zap.Any("panic", r))
			}
		}()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := c.CleanupStale(); removed > 0 {
					logger.Get().Debug("cache cleanup removed stale entries", zap.Int("removed", removed))
				}
			}
		}
	}()
}

// SuggestionKey builds a cache key for a suggestion result. Endpoints are
// rounded to ~100m so nearby requests share an entry.
func SuggestionKey(start, end geo.Point) string {
	return fmt.Sprintf("suggestions:%.3f,%.3f:%.3f,%.3f",
		start.Latitude, start.Longitude, end.Latitude, end.Longitude)
}

// BypassKey builds a cache key for bypass routes around a congested point.
func BypassKey(center geo.Point) string {
	return fmt.Sprintf("bypasses:%.3f,%.3f", center.Latitude, center.Longitude)
}
