package httpserver

import "encoding/json"

// CacheStatus reports the outcome of a cache lookup
type CacheStatus string

const (
	CacheStatusHit  CacheStatus = "HIT"
	CacheStatusMiss CacheStatus = "MISS"
)

// CacheRequest represents a cache operation request. Identity is never taken
// from this body; it comes from the verified bearer token.
type CacheRequest struct {
	Query     string          `json:"query"`
	Variables map[string]any  `json:"variables,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`   // For SET operations - response data
	TTLMs     *int            `json:"ttl_ms,omitempty"` // TTL in milliseconds, optional for SET
}

// InvalidateRequest selects entries for bulk invalidation
type InvalidateRequest struct {
	Query  string `json:"query,omitempty"`
	UserID string `json:"user_id,omitempty"`
	Role   string `json:"role,omitempty"`
}

// CacheResponse represents a cache operation response
type CacheResponse struct {
	Success     bool            `json:"success"`
	Found       bool            `json:"found,omitempty"`
	Data        json.RawMessage `json:"data,omitempty"`
	Key         string          `json:"key,omitempty"`
	Invalidated int             `json:"invalidated,omitempty"`
	Error       string          `json:"error,omitempty"`
	CacheStatus CacheStatus     `json:"cache_status,omitempty"` // HIT or MISS
}
