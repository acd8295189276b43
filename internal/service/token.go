package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = time.Hour

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// TokenManager issues and verifies HS256 session tokens.
// New tokens are signed with the current key; tokens signed with any of the
// previous keys still verify until they expire.
type TokenManager struct {
	key      []byte
	previous [][]byte
	ttl      time.Duration
	now      func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration, previous ...string) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	m := &TokenManager{key: []byte(secret), ttl: ttl, now: time.Now}
	for _, p := range previous {
		if p != "" && p != secret {
			m.previous = append(m.previous, []byte(p))
		}
	}
	return m
}

// Issue returns a signed token for userID expiring exactly ttl from now.
func (m *TokenManager) Issue(userID int) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	signed, err := token.SignedString(m.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, then expiry, and returns the embedded user id.
// It fails with ErrTokenExpired or ErrInvalidToken, never a partial result.
func (m *TokenManager) Verify(accessToken string) (int, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(accessToken, claims, m.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID <= 0 {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}

func (m *TokenManager) keyFunc(token *jwt.Token) (interface{}, error) {
	// Ensure HMAC signing is used
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	if len(m.previous) == 0 {
		return m.key, nil
	}
	keys := make([]jwt.VerificationKey, 0, len(m.previous)+1)
	keys = append(keys, m.key)
	for _, p := range m.previous {
		keys = append(keys, p)
	}
	return jwt.VerificationKeySet{Keys: keys}, nil
}
