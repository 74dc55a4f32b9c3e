// Package cache stores computed layouts and rendered artifacts.
//
// # Back ends
//
//   - [FileCache]: one JSON file per entry under ~/.cache/panelfit (CLI)
//   - [RedisCache]: a shared Redis instance (the HTTP server)
//   - [MemoryCache]: process-local map (tests and single-shot servers)
//   - [NullCache]: stores nothing (--no-cache)
//
// Entries are opaque bytes with an optional TTL. Keys come from a [Keyer]
// so that every back end sees the same layout and artifact keys:
//
//	k := cache.NewDefaultKeyer()
//	key := k.LayoutKey(sceneHash, cache.LayoutKeyOpts{Randomize: true, Seed: 42})
//	if data, ok, _ := c.Get(ctx, key); ok { ... }
package cache

import (
	"context"
	"time"
)

// Default TTLs for cached entries.
const (
	LayoutTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry. A zero TTL never expires.
// Get reports a miss as (nil, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
