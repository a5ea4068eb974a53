package ports

import "context"

// Cache wraps read paths with a get-or-load cache and keeps entries in
// step with mutations. Implementations apply per-region policy (TTL,
// key prefix, null-value caching) and may defer writes until the
// surrounding transaction commits.
type Cache interface {
	// GetOrLoad serves dest from the cache when possible. On a miss it
	// invokes load, which fills dest and reports whether a value was
	// found, then stores the result under the region's policy.
	GetOrLoad(ctx context.Context, region, id string, dest interface{}, load func(ctx context.Context) (bool, error)) (bool, error)

	// Put stores value under the region's key for id, refreshing any
	// existing entry.
	Put(ctx context.Context, region, id string, value interface{})

	// Evict removes the entry for id from the region.
	Evict(ctx context.Context, region, id string)
}
