package auth

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
	ErrInvalidClaims = errors.New("invalid token claims")
	ErrKeyFetch      = errors.New("failed to fetch signing keys")
)

// VerifiedIdentity is the result of a successful ID token verification
type VerifiedIdentity struct {
	// Subject is the stable identifier assigned by the identity provider
	Subject string
	Email   string
	Name    string
}

// TokenVerifier verifies bearer ID tokens issued by an external
// identity provider.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*VerifiedIdentity, error)
}
