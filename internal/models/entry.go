package models

import (
	"encoding/json"
	"time"
)

// Entry is a stored cache record. The cache owns Data exclusively once
// inserted; callers must not mutate it after Set or after a Get returns it.
// Query, UserID and Role are the decomposed key components kept for
// invalidation matching.
type Entry struct {
	Data       json.RawMessage
	Query      string
	UserID     string
	Role       string
	InsertedAt time.Time
	TTL        time.Duration
}

// Expired reports whether the entry's TTL has elapsed at the given time.
func (e *Entry) Expired(now time.Time) bool {
	return now.Sub(e.InsertedAt) > e.TTL
}

// Stats describes cache utilization.
type Stats struct {
	Size        int     `json:"size"`
	MaxEntries  int     `json:"max_entries"`
	Utilization float64 `json:"utilization_percent"`
}
