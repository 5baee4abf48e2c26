// Package jwt issues and verifies HS256 access tokens and exposes the verified
// claims to handlers through the request context.
package jwt

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"
)

// TokenIssuer identifies tokens minted by this server.
const TokenIssuer = "boardrtc"

// ErrInvalidToken is returned for tokens that fail signature, expiry or issuer checks.
var ErrInvalidToken = errors.New("invalid or expired token")

// GenerateToken signs payload for duration. The standard claims are overwritten.
func GenerateToken(payload *Payload, secretKey string, duration time.Duration) (string, error) {
	now := time.Now()

	payload.StandardClaims = jwt.StandardClaims{
		Subject:   strconv.FormatInt(payload.UserID, 10),
		ExpiresAt: now.Add(duration).Unix(),
		IssuedAt:  now.Unix(),
		Issuer:    TokenIssuer,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString([]byte(secretKey))
}

// ParseToken verifies tokenString and returns its claims.
func ParseToken(tokenString string, secretKey string) (*Payload, error) {
	claims := &Payload{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid || !claims.VerifyIssuer(TokenIssuer, true) || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
