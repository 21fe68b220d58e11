// Package store supplies traffic snapshots to the service layer. Two
// sources exist: a seeded static dataset for development and demos, and a
// MongoDB-backed source fed by the camera analytics pipeline.
package store

import (
	"context"

	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/traffic"
)

// SnapshotSource produces the current traffic snapshot. Implementations
// must return a snapshot the caller can hold without synchronization.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (traffic.Snapshot, error)
}
