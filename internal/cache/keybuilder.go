package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"go-gql-cache/internal/interfaces"
	"go-gql-cache/internal/models"
)

// Ensure KeyBuilderImpl implements interfaces.KeyBuilder
var _ interfaces.KeyBuilder = (*KeyBuilderImpl)(nil)

// Sentinels for absent identity components, so that "no user" and "no role"
// occupy fixed key positions distinct from any real value.
const (
	AnonymousUser = "anonymous"
	NoRole        = "none"
)

// KeyBuilderImpl implements the KeyBuilder interface
type KeyBuilderImpl struct{}

// NewKeyBuilder creates a new KeyBuilder instance
func NewKeyBuilder() interfaces.KeyBuilder {
	return &KeyBuilderImpl{}
}

// Build creates a cache key for a key descriptor. The key is the JSON encoding
// of the tuple [query, variables, userID, role, permissions]; no hashing is
// involved, so distinct descriptors can never collide. Variables are
// canonicalized by JSON marshaling (map keys are emitted in sorted order at
// every level) and permissions are sorted, so insertion order never affects
// the key.
func (kb *KeyBuilderImpl) Build(d *models.KeyDescriptor) (string, error) {
	if d == nil {
		return "", errors.New("descriptor cannot be nil")
	}

	if d.Query == "" {
		return "", errors.New("descriptor query cannot be empty")
	}

	varsJSON, err := canonicalVariables(d.Variables)
	if err != nil {
		return "", fmt.Errorf("failed to marshal variables: %w", err)
	}

	userID := d.UserID
	if userID == "" {
		userID = AnonymousUser
	}

	role := d.Role
	if role == "" {
		role = NoRole
	}

	// Sort a copy of permissions; set semantics, order-insensitive.
	perms := make([]string, len(d.Permissions))
	copy(perms, d.Permissions)
	sort.Strings(perms)

	key, err := json.Marshal([]any{d.Query, string(varsJSON), userID, role, perms})
	if err != nil {
		return "", fmt.Errorf("failed to marshal key tuple: %w", err)
	}

	return string(key), nil
}

// canonicalVariables serializes the variables map deterministically. A nil map
// and an empty map produce the same form. encoding/json writes map keys in
// sorted order, which covers nested objects as long as values came from JSON
// decoding (map[string]any all the way down).
func canonicalVariables(vars map[string]any) ([]byte, error) {
	if vars == nil {
		vars = map[string]any{}
	}
	return json.Marshal(vars)
}
