package cache

import (
	"testing"

	"go-gql-cache/internal/models"
)

func TestKeyBuilder_Build(t *testing.T) {
	kb := NewKeyBuilder()

	tests := []struct {
		name       string
		descriptor *models.KeyDescriptor
		wantError  bool
	}{
		{
			name: "basic descriptor",
			descriptor: &models.KeyDescriptor{
				Query:     "GetFeed",
				Variables: map[string]any{"limit": float64(10)},
				UserID:    "u1",
				Role:      "user",
			},
			wantError: false,
		},
		{
			name: "anonymous descriptor",
			descriptor: &models.KeyDescriptor{
				Query: "GetFeed",
			},
			wantError: false,
		},
		{
			name:       "nil descriptor",
			descriptor: nil,
			wantError:  true,
		},
		{
			name: "empty query",
			descriptor: &models.KeyDescriptor{
				UserID: "u1",
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotKey, gotErr := kb.Build(tt.descriptor)

			if tt.wantError {
				if gotErr == nil {
					t.Errorf("Build() expected error, but got none")
				}
				if gotKey != "" {
					t.Errorf("Build() gotKey = %v, want empty string when error expected", gotKey)
				}
				return
			}

			if gotErr != nil {
				t.Errorf("Build() unexpected error: %v", gotErr)
			}
			if gotKey == "" {
				t.Errorf("Build() returned empty key")
			}
		})
	}
}

func TestKeyBuilder_OrderInsensitive(t *testing.T) {
	kb := NewKeyBuilder()

	d1 := &models.KeyDescriptor{
		Query:       "GetFeed",
		Variables:   map[string]any{"limit": float64(10), "offset": float64(0)},
		UserID:      "u1",
		Role:        "admin",
		Permissions: []string{"read", "write", "moderate"},
	}
	d2 := &models.KeyDescriptor{
		Query:       "GetFeed",
		Variables:   map[string]any{"offset": float64(0), "limit": float64(10)},
		UserID:      "u1",
		Role:        "admin",
		Permissions: []string{"moderate", "read", "write"},
	}

	k1, err := kb.Build(d1)
	if err != nil {
		t.Fatalf("Build(d1) unexpected error: %v", err)
	}
	k2, err := kb.Build(d2)
	if err != nil {
		t.Fatalf("Build(d2) unexpected error: %v", err)
	}

	if k1 != k2 {
		t.Errorf("Build() keys differ for order-only differences:\n%s\n%s", k1, k2)
	}
}

func TestKeyBuilder_NestedVariables(t *testing.T) {
	kb := NewKeyBuilder()

	d1 := &models.KeyDescriptor{
		Query: "GetFeed",
		Variables: map[string]any{
			"filter": map[string]any{"author": "alice", "tag": "go"},
		},
	}
	d2 := &models.KeyDescriptor{
		Query: "GetFeed",
		Variables: map[string]any{
			"filter": map[string]any{"tag": "go", "author": "alice"},
		},
	}

	k1, _ := kb.Build(d1)
	k2, _ := kb.Build(d2)
	if k1 != k2 {
		t.Errorf("Build() keys differ for nested order-only differences:\n%s\n%s", k1, k2)
	}
}

func TestKeyBuilder_Distinctness(t *testing.T) {
	kb := NewKeyBuilder()

	base := models.KeyDescriptor{
		Query:       "GetFeed",
		Variables:   map[string]any{"limit": float64(10)},
		UserID:      "u1",
		Role:        "user",
		Permissions: []string{"read"},
	}

	variants := []struct {
		name   string
		mutate func(d *models.KeyDescriptor)
	}{
		{"different query", func(d *models.KeyDescriptor) { d.Query = "GetUser" }},
		{"different variable value", func(d *models.KeyDescriptor) { d.Variables = map[string]any{"limit": float64(20)} }},
		{"extra variable", func(d *models.KeyDescriptor) { d.Variables = map[string]any{"limit": float64(10), "offset": float64(0)} }},
		{"different user", func(d *models.KeyDescriptor) { d.UserID = "u2" }},
		{"absent user", func(d *models.KeyDescriptor) { d.UserID = "" }},
		{"different role", func(d *models.KeyDescriptor) { d.Role = "admin" }},
		{"absent role", func(d *models.KeyDescriptor) { d.Role = "" }},
		{"different permissions", func(d *models.KeyDescriptor) { d.Permissions = []string{"read", "write"} }},
		{"no permissions", func(d *models.KeyDescriptor) { d.Permissions = nil }},
	}

	baseKey, err := kb.Build(&base)
	if err != nil {
		t.Fatalf("Build(base) unexpected error: %v", err)
	}

	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			d := base
			v.mutate(&d)

			key, err := kb.Build(&d)
			if err != nil {
				t.Fatalf("Build() unexpected error: %v", err)
			}
			if key == baseKey {
				t.Errorf("Build() key collision between distinct descriptors: %s", key)
			}
		})
	}
}

func TestKeyBuilder_SentinelNormalization(t *testing.T) {
	kb := NewKeyBuilder()

	// An absent identity is the same caller as the explicit sentinel values.
	absent := &models.KeyDescriptor{Query: "GetFeed"}
	explicit := &models.KeyDescriptor{Query: "GetFeed", UserID: AnonymousUser, Role: NoRole}

	k1, _ := kb.Build(absent)
	k2, _ := kb.Build(explicit)
	if k1 != k2 {
		t.Errorf("Build() absent identity should normalize to sentinels:\n%s\n%s", k1, k2)
	}

	// Nil and empty variables canonicalize identically.
	noVars := &models.KeyDescriptor{Query: "GetFeed", Variables: nil}
	emptyVars := &models.KeyDescriptor{Query: "GetFeed", Variables: map[string]any{}}

	k3, _ := kb.Build(noVars)
	k4, _ := kb.Build(emptyVars)
	if k3 != k4 {
		t.Errorf("Build() nil and empty variables should produce the same key:\n%s\n%s", k3, k4)
	}
}

func TestKeyBuilder_Deterministic(t *testing.T) {
	kb := NewKeyBuilder()

	d := &models.KeyDescriptor{
		Query:       "GetFeed",
		Variables:   map[string]any{"limit": float64(10), "cursor": "abc"},
		UserID:      "u1",
		Role:        "admin",
		Permissions: []string{"read", "write"},
	}

	first, err := kb.Build(d)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	for i := 0; i < 50; i++ {
		key, err := kb.Build(d)
		if err != nil {
			t.Fatalf("Build() unexpected error on iteration %d: %v", i, err)
		}
		if key != first {
			t.Fatalf("Build() non-deterministic key on iteration %d:\n%s\n%s", i, first, key)
		}
	}
}

func TestKeyBuilder_DoesNotMutateDescriptor(t *testing.T) {
	kb := NewKeyBuilder()

	perms := []string{"write", "read"}
	d := &models.KeyDescriptor{
		Query:       "GetFeed",
		Permissions: perms,
	}

	if _, err := kb.Build(d); err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	if perms[0] != "write" || perms[1] != "read" {
		t.Errorf("Build() mutated the descriptor's permissions: %v", perms)
	}
}
