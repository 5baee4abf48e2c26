package jwt

import "github.com/golang-jwt/jwt"

// Payload is the claim set of an access token.
type Payload struct {
	jwt.StandardClaims

	// UserID is the numeric users.id of the token holder. The standard subject
	// claim carries the same value as a string.
	UserID int64 `json:"uid"`

	// Username doubles as the display identity in chat and signaling rooms.
	Username string `json:"username"`

	IsAdmin bool `json:"admin,omitempty"`
}
