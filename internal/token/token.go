package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the authenticated user's ID inside the bearer token.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Manager signs and verifies HS256 bearer tokens.
type Manager struct {
	secret    []byte
	expiresIn time.Duration
}

// NewManager creates a token manager with the given signing secret and lifetime.
func NewManager(secret string, expiresIn time.Duration) *Manager {
	return &Manager{
		secret:    []byte(secret),
		expiresIn: expiresIn,
	}
}

// Sign issues a time-limited token for the given user ID.
func (m *Manager) Sign(userID string) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(m.secret)
}

// Verify parses and validates a token string and returns its claims.
func (m *Manager) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if c, ok := token.Claims.(*Claims); ok && token.Valid {
		return c, nil
	}
	return nil, errors.New("invalid token")
}
