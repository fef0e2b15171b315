package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotJWT is returned by ParseCredentialClaims when the secret is not a
// JWT. Opaque bearer tokens are valid credentials; they just carry no claims.
var ErrNotJWT = errors.New("credential is not a JWT")

// CredentialClaims are the display fields read from a JWT credential.
type CredentialClaims struct {
	Subject   string
	ExpiresAt time.Time
}

// ParseCredentialClaims reads the sub and exp claims of a JWT without
// verifying its signature. The client cannot verify the backend's signature,
// so the result is for display only.
//
// Example usage:
//
//	claims, err := utils.ParseCredentialClaims(cred.Secret)
//	if err == nil && !claims.ExpiresAt.IsZero() {
//	    fmt.Println("expires", claims.ExpiresAt)
//	}
func ParseCredentialClaims(secret string) (CredentialClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(secret, claims); err != nil {
		return CredentialClaims{}, fmt.Errorf("%w: %w", ErrNotJWT, err)
	}

	var out CredentialClaims

	sub, err := claims.GetSubject()
	if err != nil {
		return CredentialClaims{}, fmt.Errorf("error reading subject claim: %w", err)
	}
	out.Subject = sub

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return CredentialClaims{}, fmt.Errorf("error reading exp claim: %w", err)
	}
	if exp != nil {
		out.ExpiresAt = exp.Time
	}

	return out, nil
}
