package noop

import (
	"go-gql-cache/internal/interfaces"
	"go-gql-cache/internal/models"
)

// Ensure NoOpStore implements interfaces.Store
var _ interfaces.Store = (*NoOpStore)(nil)

// NoOpStore is a no-operation store implementation for when caching is disabled
type NoOpStore struct{}

// NewNoOpStore creates a new no-operation store instance
func NewNoOpStore() interfaces.Store {
	return &NoOpStore{}
}

// Get always returns cache miss
func (n *NoOpStore) Get(key string) (*models.Entry, bool) {
	return nil, false
}

// Set does nothing
func (n *NoOpStore) Set(key string, entry models.Entry) {
	// No-op
}

// Invalidate deletes nothing
func (n *NoOpStore) Invalidate(pattern models.InvalidationPattern) int {
	return 0
}

// Clear does nothing
func (n *NoOpStore) Clear() {
	// No-op
}

// Stats reports an empty store
func (n *NoOpStore) Stats() models.Stats {
	return models.Stats{}
}
