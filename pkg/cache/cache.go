// Package cache provides the process-wide get-or-compute cache that fronts
// every expensive aggregation. Entries expire individually; an internal
// cleanup cycle sweeps expired entries so memory is reclaimed even for keys
// that are never read again.
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// ServiceConfig configures the cache service.
type ServiceConfig struct {
	DefaultTTL      time.Duration // TTL used when Set is called with ttl <= 0 (default: 5 minutes)
	CleanupInterval time.Duration // Interval for expired entry sweeps (default: 1 minute)
}

// DefaultServiceConfig returns default cache service configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		DefaultTTL:      5 * time.Minute,
		CleanupInterval: time.Minute,
	}
}

type entry struct {
	value     any
	expiresAt time.Time
}

// Service is an injectable key→value cache, safe for concurrent use from
// arbitrary request workers. Callers only see atomic get/set semantics.
type Service struct {
	mu      sync.RWMutex
	entries map[string]entry

	flight singleflight.Group

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	defaultTTL      time.Duration
	cleanupInterval time.Duration
}

// NewService creates a cache service and starts its cleanup cycle.
func NewService(cfg ServiceConfig) *Service {
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = 5 * time.Minute
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = time.Minute
	}

	ctx, cancel := context.WithCancel(context.Background())

	s := &Service{
		entries:         make(map[string]entry),
		ctx:             ctx,
		cancel:          cancel,
		defaultTTL:      cfg.DefaultTTL,
		cleanupInterval: cfg.CleanupInterval,
	}

	s.wg.Add(1)
	go s.cleanupLoop()

	return s
}

// Close stops the cleanup cycle. The cache stays readable after Close, but
// expired entries are only dropped lazily on Get.
func (s *Service) Close() {
	s.cancel()
	s.wg.Wait()
}

// Get returns the value stored under key if present and unexpired.
func (s *Service) Get(key string) (any, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		s.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have refreshed it.
		if cur, ok := s.entries[key]; ok && time.Now().After(cur.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the given ttl, replacing any previous
// entry and extending its expiration.
func (s *Service) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	s.mu.Lock()
	s.entries[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
	s.mu.Unlock()
}

// GetOrCompute returns the cached value for key, or invokes fn, stores its
// result with ttl, and returns it. Concurrent misses on the same key share a
// single in-flight computation; distinct keys proceed fully in parallel.
func (s *Service) GetOrCompute(key string, ttl time.Duration, fn func() (any, error)) (any, error) {
	if v, ok := s.Get(key); ok {
		return v, nil
	}

	v, err, _ := s.flight.Do(key, func() (any, error) {
		// A previous flight may have populated the key while we waited.
		if v, ok := s.Get(key); ok {
			return v, nil
		}
		v, err := fn()
		if err != nil {
			return nil, err
		}
		s.Set(key, v, ttl)
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Invalidate removes the entry stored under key, if any.
func (s *Service) Invalidate(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// FlushAll removes every entry.
func (s *Service) FlushAll() {
	s.mu.Lock()
	s.entries = make(map[string]entry)
	s.mu.Unlock()
}

// Len returns the number of entries currently held, expired or not.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// CleanupExpired removes every expired entry.
func (s *Service) CleanupExpired() {
	now := time.Now()
	s.mu.Lock()
	for key, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
}

func (s *Service) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.CleanupExpired()
		}
	}
}
