package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// CallerContext is the authorization context a cache key is scoped by. It is
// derived from a verified token, never from the request body, since the
// role-segregation property of the cache depends on it being trustworthy.
type CallerContext struct {
	UserID      string
	Role        string
	Permissions []string
}

// Anonymous is the context for requests carrying no token.
func Anonymous() CallerContext {
	return CallerContext{}
}

type Claims struct {
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// ParseToken verifies an HS256-signed token and returns its claims.
func ParseToken(secret string, token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Context converts verified claims into a caller context. The token subject
// becomes the user ID.
func (c *Claims) Context() CallerContext {
	return CallerContext{
		UserID:      c.Subject,
		Role:        c.Role,
		Permissions: c.Permissions,
	}
}
