package service

import (
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"go-gql-cache/internal/cache"
	"go-gql-cache/internal/interfaces"
	"go-gql-cache/internal/metrics"
	"go-gql-cache/internal/models"
)

// CacheService handles cache operations with business logic
type CacheService struct {
	store      interfaces.Store
	keyBuilder interfaces.KeyBuilder
	logger     *zap.Logger
}

// NewCacheService creates a new cache service instance
func NewCacheService(store interfaces.Store, logger *zap.Logger) *CacheService {
	return &CacheService{
		store:      store,
		keyBuilder: cache.NewKeyBuilder(),
		logger:     logger,
	}
}

// GetResponse represents the result of a cache get operation
type GetResponse struct {
	Found bool            `json:"found"`
	Data  json.RawMessage `json:"data,omitempty"`
	Key   string          `json:"key"`
}

// Get retrieves a cached response for the descriptor
func (s *CacheService) Get(d *models.KeyDescriptor) (*GetResponse, error) {
	key, err := s.keyBuilder.Build(d)
	if err != nil {
		return nil, fmt.Errorf("failed to build cache key: %w", err)
	}

	role := roleLabel(d)
	metrics.RecordCacheRequest(role)

	timer := metrics.TimeCacheGetOperation()
	defer timer()

	entry, found := s.store.Get(key)
	if !found {
		metrics.RecordCacheMiss(role)
		s.updateUtilization()
		return &GetResponse{Found: false, Key: key}, nil
	}

	metrics.RecordCacheHit(role)
	s.logger.Debug("Cache hit",
		zap.String("query", entry.Query),
		zap.String("user_id", entry.UserID),
		zap.String("role", entry.Role))

	return &GetResponse{
		Found: true,
		Data:  entry.Data,
		Key:   key,
	}, nil
}

// Set stores a response for the descriptor. ttlMs overrides the store's
// default TTL when non-nil.
func (s *CacheService) Set(d *models.KeyDescriptor, data json.RawMessage, ttlMs *int) error {
	key, err := s.keyBuilder.Build(d)
	if err != nil {
		return fmt.Errorf("failed to build cache key: %w", err)
	}

	var ttl time.Duration
	if ttlMs != nil {
		ttl = time.Duration(*ttlMs) * time.Millisecond
	}

	s.store.Set(key, models.Entry{
		Data:   data,
		Query:  d.Query,
		UserID: normalizedUserID(d),
		Role:   roleLabel(d),
		TTL:    ttl,
	})

	s.updateUtilization()
	return nil
}

// Resolve returns the cached response for the descriptor, invoking produce on
// a miss and caching its result with the default TTL. Producer errors pass
// through uncached.
func (s *CacheService) Resolve(d *models.KeyDescriptor, produce func() (json.RawMessage, error)) (json.RawMessage, error) {
	res, err := s.Get(d)
	if err != nil {
		return nil, err
	}
	if res.Found {
		return res.Data, nil
	}

	data, err := produce()
	if err != nil {
		return nil, err
	}

	if err := s.Set(d, data, nil); err != nil {
		return nil, err
	}
	return data, nil
}

// Invalidate deletes all entries matching the pattern and returns the count
func (s *CacheService) Invalidate(pattern models.InvalidationPattern) int {
	deleted := s.store.Invalidate(pattern)
	if deleted > 0 {
		metrics.RecordInvalidated(deleted)
		s.logger.Info("Cache entries invalidated",
			zap.Int("deleted", deleted),
			zap.String("query", pattern.Query),
			zap.String("user_id", pattern.UserID),
			zap.String("role", pattern.Role))
	}

	s.updateUtilization()
	return deleted
}

// Clear unconditionally empties the cache
func (s *CacheService) Clear() {
	s.store.Clear()
	s.logger.Info("Cache cleared")
	s.updateUtilization()
}

// Stats returns current cache utilization
func (s *CacheService) Stats() models.Stats {
	return s.store.Stats()
}

// updateUtilization refreshes the size and utilization gauges
func (s *CacheService) updateUtilization() {
	stats := s.store.Stats()
	metrics.UpdateUtilization(stats.Size, stats.Utilization)
}

// roleLabel returns the entry's role component, with the absent-role sentinel
func roleLabel(d *models.KeyDescriptor) string {
	if d.Role == "" {
		return cache.NoRole
	}
	return d.Role
}

// normalizedUserID returns the entry's user component, with the anonymous sentinel
func normalizedUserID(d *models.KeyDescriptor) string {
	if d.UserID == "" {
		return cache.AnonymousUser
	}
	return d.UserID
}
