package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// BackendClaims is the subset of the backend access token this client reads.
// The token is never verified here; only its expiry and subject are used.
type BackendClaims struct {
	jwt.RegisteredClaims
	UserID         string `json:"userId,omitempty"`
	Role           Role   `json:"role,omitempty"`
	OrganizationID string `json:"organizationId,omitempty"`
}
