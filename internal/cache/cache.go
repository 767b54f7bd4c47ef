// Package cache stores channel type registry snapshots between runs.
// Supports both local (file) and Redis backends for multi-instance deployments.
package cache

import (
	"context"

	"gwconsole/internal/channeltype"
)

// Cache defines the interface for snapshot storage.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves the last stored snapshot.
	// Returns nil, nil if no snapshot exists yet.
	Get(ctx context.Context) (*channeltype.Snapshot, error)

	// Set stores the snapshot, replacing any previous one.
	Set(ctx context.Context, snapshot *channeltype.Snapshot) error

	// Close releases any resources held by the cache.
	Close() error
}
