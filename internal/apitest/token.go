package apitest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/oguzhanozgokce/BootMobileSecure/internal/utils"
)

const tokenTTL = time.Hour

var (
	errEmptyAuthorizationHeader   = errors.New("empty authorization header")
	errInvalidAuthorizationHeader = errors.New("invalid authorization header")
	errTokenRevoked               = errors.New("token revoked")
)

type usernameCtxKey struct{}

func (b *Backend) sign(username string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   username,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(b.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// verify checks an "Authorization" header value and returns the subject.
func (b *Backend) verify(header string) (string, error) {
	if header == "" {
		return "", errEmptyAuthorizationHeader
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != "Bearer" || token == "" {
		return "", errInvalidAuthorizationHeader
	}

	b.mu.Lock()
	revoked := b.revoked[token]
	b.mu.Unlock()
	if revoked {
		return "", errTokenRevoked
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return b.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}

	return claims.Subject, nil
}

// auth rejects requests without a valid credential with 401.
func (b *Backend) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, err := b.verify(r.Header.Get("Authorization"))
		if err != nil {
			_, _ = utils.WriteEnvelope(w, false, err.Error(), nil, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), usernameCtxKey{}, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
