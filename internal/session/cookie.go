package session

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

// DeriveKey expands the configured secret into a 32 byte key for one purpose
func DeriveKey(secret, purpose string) ([]byte, error) {
	key := make([]byte, 32)
	reader := hkdf.New(sha256.New, []byte(secret), nil, []byte(purpose))
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive %s key: %w", purpose, err)
	}
	return key, nil
}

type cookieClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// CookieCodec signs and verifies the session cookie value
type CookieCodec struct {
	key []byte
	now func() time.Time
}

// NewCookieCodec creates a codec keyed from the session secret
func NewCookieCodec(secret string) (*CookieCodec, error) {
	key, err := DeriveKey(secret, "vitality-session-cookie")
	if err != nil {
		return nil, err
	}
	return &CookieCodec{key: key, now: time.Now}, nil
}

// Encode returns a signed cookie value carrying the session id
func (c *CookieCodec) Encode(sessionID string, ttl time.Duration) (string, error) {
	now := c.now()
	claims := cookieClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign session cookie: %w", err)
	}
	return signed, nil
}

// Decode verifies a cookie value and returns the session id
func (c *CookieCodec) Decode(value string) (string, error) {
	claims := &cookieClaims{}
	_, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		return c.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(c.now))
	if err != nil {
		return "", fmt.Errorf("invalid session cookie: %w", err)
	}
	if claims.SessionID == "" {
		return "", errors.New("invalid session cookie: missing session id")
	}
	return claims.SessionID, nil
}
