package helpers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

type CustomClaims struct {
	Role     string `json:"role"`
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// TokenValidator parses and verifies a bearer token.
type TokenValidator func(tokenStr string) (*CustomClaims, error)

// NewJWKSValidator fetches the key set once and keeps it refreshed in the background.
// The returned stop func ends the refresh goroutine.
func NewJWKSValidator(ctx context.Context, jwksURL string) (TokenValidator, func(), error) {
	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load JWKS from %s: %w", jwksURL, err)
	}

	validate := func(tokenStr string) (*CustomClaims, error) {
		return parseClaims(tokenStr, jwks.Keyfunc)
	}
	return validate, jwks.EndBackground, nil
}

func NewHMACValidator(secret string) TokenValidator {
	key := []byte(secret)
	return func(tokenStr string) (*CustomClaims, error) {
		return parseClaims(tokenStr, func(*jwt.Token) (interface{}, error) { return key, nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	}
}

func parseClaims(tokenStr string, kf jwt.Keyfunc, opts ...jwt.ParserOption) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, kf, opts...)
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

func StringTrim(s string) string {
	return strings.Trim(strings.TrimSpace(s), "\"'")
}
