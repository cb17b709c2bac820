package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID uuid.UUID
	Role   string
	JTI    string
}

// AccessTokenClaims represents the typed JWT issued to clients. The user id
// doubles as the cart session namespace; the raw token is the credential the
// sync adapter forwards to the order service.
type AccessTokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// SessionKey returns the storage namespace for this principal's cart.
func (c *AccessTokenClaims) SessionKey() string {
	return c.UserID.String()
}
