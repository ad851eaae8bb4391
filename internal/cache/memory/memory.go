package memory

import (
	"container/list"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"go-gql-cache/internal/interfaces"
	"go-gql-cache/internal/metrics"
	"go-gql-cache/internal/models"
)

// Ensure Store implements interfaces.Store
var _ interfaces.Store = (*Store)(nil)

// Configuration errors. Invalid limits fail fast at construction instead of
// being clamped, so a misconfigured cache never runs unbounded or with
// zero-TTL entries.
var (
	ErrInvalidMaxEntries = errors.New("max entries must be positive")
	ErrInvalidTTL        = errors.New("default TTL must be positive")
)

// record is a stored entry plus its own key, kept on the eviction queue.
type record struct {
	key   string
	entry models.Entry
}

// Store is a bounded, TTL-expiring in-memory cache. Expiry is lazy: an
// expired entry occupies its slot until the next Get that encounters it or
// until it reaches the front of the eviction queue. Eviction is by insertion
// order (FIFO), never reordered on access.
//
// All operations are safe for concurrent use; mutations are serialized under
// a single mutex.
type Store struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	order      *list.List // front is oldest-inserted
	maxEntries int
	defaultTTL time.Duration
	clk        clock.Clock
	logger     *zap.Logger
}

// New creates a Store. maxEntries bounds the number of simultaneously held
// entries; defaultTTL applies to entries inserted without an explicit TTL.
// The clock is injectable so TTL behavior is testable without real delays.
func New(maxEntries int, defaultTTL time.Duration, clk clock.Clock, logger *zap.Logger) (*Store, error) {
	if maxEntries <= 0 {
		return nil, ErrInvalidMaxEntries
	}
	if defaultTTL <= 0 {
		return nil, ErrInvalidTTL
	}

	return &Store{
		entries:    make(map[string]*list.Element),
		order:      list.New(),
		maxEntries: maxEntries,
		defaultTTL: defaultTTL,
		clk:        clk,
		logger:     logger,
	}, nil
}

// Get retrieves the entry for key. An entry past its TTL is deleted and
// reported as absent. The returned entry's payload is the stored value, not a
// copy; callers must treat it as immutable.
func (s *Store) Get(key string) (*models.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, found := s.entries[key]
	if !found {
		return nil, false
	}

	rec := elem.Value.(*record)
	if rec.entry.Expired(s.clk.Now()) {
		s.removeLocked(elem)
		s.logger.Debug("Expired cache entry reclaimed", zap.String("key", key))
		return nil, false
	}

	entry := rec.entry
	return &entry, true
}

// Set stores an entry under key. A zero TTL on the entry is replaced with the
// store's default. Overwriting an existing key keeps its position in the
// eviction queue and restarts its TTL. Inserting a new key at capacity first
// evicts the oldest-inserted entry still present.
func (s *Store) Set(key string, entry models.Entry) {
	if entry.TTL <= 0 {
		entry.TTL = s.defaultTTL
	}
	entry.InsertedAt = s.clk.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, found := s.entries[key]; found {
		elem.Value.(*record).entry = entry
		return
	}

	if len(s.entries) >= s.maxEntries {
		s.evictOldestLocked()
	}

	elem := s.order.PushBack(&record{key: key, entry: entry})
	s.entries[key] = elem
}

// Invalidate deletes every held entry (expired ones included) matching the
// pattern: query by substring containment, user ID and role by exact match,
// OR across supplied fields. An empty pattern is a no-op, not a clear.
// Returns the number of entries deleted.
func (s *Store) Invalidate(pattern models.InvalidationPattern) int {
	if pattern.Empty() {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	for elem := s.order.Front(); elem != nil; {
		next := elem.Next()
		rec := elem.Value.(*record)
		if matchesPattern(&rec.entry, pattern) {
			s.removeLocked(elem)
			deleted++
		}
		elem = next
	}

	return deleted
}

// Clear unconditionally empties the store.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]*list.Element)
	s.order.Init()
}

// Stats returns current utilization. Size counts physically held entries,
// including expired ones not yet lazily reclaimed.
func (s *Store) Stats() models.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	size := len(s.entries)
	return models.Stats{
		Size:        size,
		MaxEntries:  s.maxEntries,
		Utilization: float64(size) / float64(s.maxEntries) * 100,
	}
}

// evictOldestLocked removes the entry at the front of the queue. Caller must
// hold the mutex.
func (s *Store) evictOldestLocked() {
	front := s.order.Front()
	if front == nil {
		return
	}

	rec := front.Value.(*record)
	s.removeLocked(front)
	metrics.RecordEviction()
	s.logger.Debug("Evicted oldest cache entry",
		zap.String("key", rec.key),
		zap.String("query", rec.entry.Query))
}

// removeLocked deletes an element from both the map and the queue. Caller
// must hold the mutex.
func (s *Store) removeLocked(elem *list.Element) {
	rec := elem.Value.(*record)
	delete(s.entries, rec.key)
	s.order.Remove(elem)
}

// matchesPattern reports whether the entry matches any supplied pattern field.
func matchesPattern(e *models.Entry, p models.InvalidationPattern) bool {
	if p.Query != "" && strings.Contains(e.Query, p.Query) {
		return true
	}
	if p.UserID != "" && p.UserID == e.UserID {
		return true
	}
	if p.Role != "" && p.Role == e.Role {
		return true
	}
	return false
}
