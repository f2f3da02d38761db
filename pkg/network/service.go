// Package network exposes the read operations served to the visualization
// client. Every expensive read is wrapped in the cache's get-or-compute
// contract with a kind-specific TTL.
package network

import (
	"context"
	"sync"
	"time"

	"github.com/transparencia-lab/politigraph/backend/pkg/cache"
	"github.com/transparencia-lab/politigraph/backend/pkg/common"
	"github.com/transparencia-lab/politigraph/backend/pkg/graph"
	"github.com/transparencia-lab/politigraph/backend/pkg/logger"
	"github.com/transparencia-lab/politigraph/backend/pkg/metrics"
	"github.com/transparencia-lab/politigraph/backend/pkg/store"
)

// TTLs trade freshness against recomputation cost: cheap list reads live
// longest, the full snapshot is the most expensive but most visible, and
// derived statistics are cheap to recompute and wanted fresh.
const (
	entityListTTL   = 20 * time.Minute
	sanctionListTTL = 15 * time.Minute
	connectionsTTL  = 10 * time.Minute
	snapshotTTL     = 10 * time.Minute
	statsTTL        = 5 * time.Minute
)

// Stats is the getStats payload: store-wide per-kind totals plus the time
// of the last snapshot build.
type Stats struct {
	store.Totals
	LastBuild time.Time `json:"last_build"`
}

// Health reports store reachability and cache occupancy. It never fails,
// only reports degraded status.
type Health struct {
	Status       string `json:"status"`
	Store        string `json:"store"`
	CacheEntries int    `json:"cache_entries"`
}

// Service assembles the store accessor, connection engine, graph builder and
// cache into the read surface served over HTTP.
type Service struct {
	store   store.Accessor
	engine  *graph.Engine
	builder *graph.Builder
	cache   *cache.Service

	mu        sync.RWMutex
	lastBuild time.Time
}

func NewService(accessor store.Accessor, cacheService *cache.Service) *Service {
	engine := graph.NewEngine(accessor)
	return &Service{
		store:   accessor,
		engine:  engine,
		builder: graph.NewBuilder(accessor, engine),
		cache:   cacheService,
	}
}

// cached wraps a typed computation in the cache's get-or-compute contract
// and records hit/miss metrics per operation.
func cached[T any](s *Service, operation, key string, ttl time.Duration, fn func() (T, error)) (T, error) {
	var zero T
	hit := true
	v, err := s.cache.GetOrCompute(key, ttl, func() (any, error) {
		hit = false
		return fn()
	})
	if err != nil {
		return zero, err
	}
	if hit {
		metrics.CacheHits.WithLabelValues(operation).Inc()
	} else {
		metrics.CacheMisses.WithLabelValues(operation).Inc()
	}
	return v.(T), nil
}

func (s *Service) ListPoliticians(ctx context.Context, limit, offset int32) ([]common.Politician, error) {
	limit = store.ClampLimit(limit, store.MaxPoliticianLimit)
	offset = store.ClampOffset(offset)
	key := cache.Key("politicians", limit, offset)
	return cached(s, "politicians", key, entityListTTL, func() ([]common.Politician, error) {
		return s.store.ListPoliticians(ctx, limit, offset)
	})
}

func (s *Service) ListParties(ctx context.Context, limit, offset int32) ([]common.Party, error) {
	limit = store.ClampLimit(limit, store.MaxPartyLimit)
	offset = store.ClampOffset(offset)
	key := cache.Key("parties", limit, offset)
	return cached(s, "parties", key, entityListTTL, func() ([]common.Party, error) {
		return s.store.ListParties(ctx, limit, offset)
	})
}

func (s *Service) ListCompanies(ctx context.Context, limit, offset int32) ([]common.Company, error) {
	limit = store.ClampLimit(limit, store.MaxCompanyLimit)
	offset = store.ClampOffset(offset)
	key := cache.Key("companies", limit, offset)
	return cached(s, "companies", key, entityListTTL, func() ([]common.Company, error) {
		return s.store.ListCompanies(ctx, limit, offset)
	})
}

func (s *Service) ListSanctions(ctx context.Context, limit, offset int32) ([]common.Sanction, error) {
	limit = store.ClampLimit(limit, store.MaxSanctionLimit)
	offset = store.ClampOffset(offset)
	key := cache.Key("sanctions", limit, offset)
	return cached(s, "sanctions", key, sanctionListTTL, func() ([]common.Sanction, error) {
		return s.store.ListSanctions(ctx, limit, offset)
	})
}

// ListConnections returns the full derived edge set. Bounded by the
// per-category caps, never paginated.
func (s *Service) ListConnections(ctx context.Context) (*graph.ConnectionSet, error) {
	return cached(s, "connections", cache.Key("connections"), connectionsTTL, func() (*graph.ConnectionSet, error) {
		return s.engine.BuildConnections(ctx), nil
	})
}

// GetNetworkSnapshot returns the complete nodes/edges/stats graph.
func (s *Service) GetNetworkSnapshot(ctx context.Context) (*common.Snapshot, error) {
	return cached(s, "snapshot", cache.Key("snapshot"), snapshotTTL, func() (*common.Snapshot, error) {
		snapshot, err := s.builder.BuildSnapshot(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.lastBuild = snapshot.Stats.BuiltAt
		s.mu.Unlock()
		return snapshot, nil
	})
}

// GetStats returns store-wide per-kind totals and the last-build timestamp.
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	return cached(s, "stats", cache.Key("stats"), statsTTL, func() (*Stats, error) {
		totals, err := s.store.Totals(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.RLock()
		lastBuild := s.lastBuild
		s.mu.RUnlock()
		return &Stats{Totals: totals, LastBuild: lastBuild}, nil
	})
}

// InvalidateAll clears every cached entry. Used for administrative refresh
// after the ingestion pipeline reloads the store.
func (s *Service) InvalidateAll() {
	s.cache.FlushAll()
	logger.Info("[Network] Cache flushed")
}

// HealthCheck reports store reachability plus cache entry count. It never
// returns an error, only a degraded status.
func (s *Service) HealthCheck(ctx context.Context) Health {
	h := Health{
		Status:       "ok",
		Store:        "reachable",
		CacheEntries: s.cache.Len(),
	}
	if err := s.store.Ping(ctx); err != nil {
		logger.Warn("[Network] Store unreachable", "err", err)
		h.Status = "degraded"
		h.Store = "unreachable"
	}
	return h
}
