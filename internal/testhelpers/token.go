package testhelpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pageza/vitality/web/internal/types"
)

// BackendToken returns a token shaped like the ones the backend issues,
// expiring after ttl. Only the payload matters; the signature is not checked.
func BackendToken(t *testing.T, userID string, role types.Role, ttl time.Duration) string {
	t.Helper()

	claims := types.BackendClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
		UserID: userID,
		Role:   role,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-test-secret"))
	if err != nil {
		t.Fatalf("failed to sign backend token: %v", err)
	}
	return token
}
