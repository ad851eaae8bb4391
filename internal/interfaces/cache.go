package interfaces

import (
	"go-gql-cache/internal/models"
)

//go:generate mockgen -package=mock -source=cache.go -destination=mock/cache.go

// Store defines the contract for cache store implementations
type Store interface {
	Get(key string) (*models.Entry, bool) // returns entry and found flag
	Set(key string, entry models.Entry)
	Invalidate(pattern models.InvalidationPattern) int // returns number of entries deleted
	Clear()
	Stats() models.Stats
}
