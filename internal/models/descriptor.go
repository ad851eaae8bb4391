package models

// KeyDescriptor identifies a cached GraphQL response: the operation, its
// arguments, and the authorization context of the caller. Two callers with
// different identity or role never share a cache entry, even for the same
// operation shape.
type KeyDescriptor struct {
	Query       string         `json:"query"`
	Variables   map[string]any `json:"variables,omitempty"`
	UserID      string         `json:"user_id,omitempty"`
	Role        string         `json:"role,omitempty"`
	Permissions []string       `json:"permissions,omitempty"`
}

// InvalidationPattern selects entries for bulk invalidation. An entry matches
// when ANY supplied field matches: Query by substring containment, UserID and
// Role by exact equality. An empty pattern matches nothing.
type InvalidationPattern struct {
	Query  string `json:"query,omitempty"`
	UserID string `json:"user_id,omitempty"`
	Role   string `json:"role,omitempty"`
}

// Empty reports whether no pattern fields are set.
func (p InvalidationPattern) Empty() bool {
	return p.Query == "" && p.UserID == "" && p.Role == ""
}
