package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"blogapi/application/ports"
	"blogapi/infrastructure/config"
)

// nullValue marks a cached absent result. Stored values are JSON
// objects, so the bare JSON null never collides with a real entry.
var nullValue = []byte("null")

// Region is the resolved cache policy for one named region.
type Region struct {
	Name            string
	TTL             time.Duration
	Prefix          string
	AllowNullValues bool
}

// Key returns the namespaced cache key for id: prefix:region:id.
func (r Region) Key(id string) string {
	return r.Prefix + ":" + r.Name + ":" + id
}

// Manager applies region policy over a Store and implements
// ports.Cache. When transactional caching is enabled and a transaction
// is in flight, writes and evictions are deferred until commit, so a
// rollback also rolls back the cache change.
type Manager struct {
	store  Store
	cfg    config.CacheConfig
	logger *zap.Logger
}

// NewManager creates a new cache manager.
func NewManager(store Store, cfg config.CacheConfig, logger *zap.Logger) *Manager {
	return &Manager{
		store:  store,
		cfg:    cfg,
		logger: logger,
	}
}

// Region resolves the policy for name, applying per-region overrides
// over the configured defaults.
func (m *Manager) Region(name string) Region {
	region := Region{
		Name:            name,
		TTL:             m.cfg.DefaultTTL,
		Prefix:          m.cfg.KeyPrefix,
		AllowNullValues: m.cfg.EnableNullValues,
	}
	if override, ok := m.cfg.Regions[name]; ok {
		if override.TTL > 0 {
			region.TTL = override.TTL
		}
		if override.Prefix != "" {
			region.Prefix = override.Prefix
		}
		if override.AllowNullValues {
			region.AllowNullValues = true
		}
	}
	return region
}

// GetOrLoad serves dest from the cache. On a hit the loader is never
// invoked. On a miss the loader fills dest and the result is stored
// with the region's TTL; an absent result is cached only when the
// region allows null values. A cache outage degrades to a plain load.
func (m *Manager) GetOrLoad(ctx context.Context, region, id string, dest interface{}, load func(ctx context.Context) (bool, error)) (bool, error) {
	reg := m.Region(region)
	key := reg.Key(id)

	data, err := m.store.Get(ctx, key)
	switch {
	case err == nil:
		if bytes.Equal(data, nullValue) {
			Hits.WithLabelValues(region).Inc()
			return false, nil
		}
		if err := json.Unmarshal(data, dest); err == nil {
			Hits.WithLabelValues(region).Inc()
			return true, nil
		}
		// Corrupt entry: drop it and fall through to the loader.
		m.logger.Warn("Dropping invalid cache entry", zap.String("key", key))
		if err := m.store.Delete(ctx, key); err != nil {
			m.logger.Warn("Failed to delete invalid cache entry", zap.String("key", key), zap.Error(err))
		}
	case errors.Is(err, ErrMiss):
		Misses.WithLabelValues(region).Inc()
	default:
		m.logger.Warn("Cache get failed, falling back to store", zap.String("key", key), zap.Error(err))
	}

	found, err := load(ctx)
	if err != nil {
		return false, err
	}

	if !found {
		if reg.AllowNullValues {
			m.write(ctx, key, nullValue, reg.TTL)
		}
		return false, nil
	}

	data, marshalErr := json.Marshal(dest)
	if marshalErr != nil {
		m.logger.Warn("Failed to marshal cache value", zap.String("key", key), zap.Error(marshalErr))
		return true, nil
	}
	m.write(ctx, key, data, reg.TTL)
	return true, nil
}

// Put stores value under the region's key for id, refreshing any
// existing entry.
func (m *Manager) Put(ctx context.Context, region, id string, value interface{}) {
	reg := m.Region(region)
	key := reg.Key(id)

	data, err := json.Marshal(value)
	if err != nil {
		m.logger.Warn("Failed to marshal cache value", zap.String("key", key), zap.Error(err))
		return
	}
	m.write(ctx, key, data, reg.TTL)
}

// Evict removes the entry for id from the region, deferring until
// commit inside a transaction.
func (m *Manager) Evict(ctx context.Context, region, id string) {
	key := m.Region(region).Key(id)

	del := func(ctx context.Context) {
		if err := m.store.Delete(ctx, key); err != nil {
			m.logger.Warn("Cache evict failed", zap.String("key", key), zap.Error(err))
		}
	}
	if m.cfg.EnableTransactions && ports.AfterCommit(ctx, del) {
		return
	}
	del(ctx)
}

// write stores data now, or after the surrounding transaction commits
// when transactional caching is enabled.
func (m *Manager) write(ctx context.Context, key string, data []byte, ttl time.Duration) {
	set := func(ctx context.Context) {
		if err := m.store.Set(ctx, key, data, ttl); err != nil {
			m.logger.Warn("Cache set failed", zap.String("key", key), zap.Error(err))
		}
	}
	if m.cfg.EnableTransactions && ports.AfterCommit(ctx, set) {
		return
	}
	set(ctx)
}

var _ ports.Cache = (*Manager)(nil)
