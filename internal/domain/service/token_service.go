package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Token type markers carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Distinct validation outcomes. The delivery layer may collapse these into a
// single user-facing message, but the service keeps them apart.
var (
	// ErrTokenInvalid is returned for malformed tokens, bad signatures, and
	// type-marker mismatches.
	ErrTokenInvalid = errors.New("token is invalid")
	// ErrTokenExpired is returned when a token is past its expiry.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenRevoked is returned when a refresh token's identifier is
	// present in the revocation store.
	ErrTokenRevoked = errors.New("token has been revoked")
)

// TokenPair bundles a freshly signed access/refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenService defines the interface for issuing and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Issue creates a new access and refresh token pair bound to the user.
	// Pure token construction: the refresh token identifier is freshly
	// generated but nothing is persisted at issuance.
	Issue(userID uuid.UUID) (*TokenPair, error)

	// Validate verifies signature, expiry and the type marker, returning the
	// bound user identifier. Refresh tokens are additionally checked against
	// the revocation store. Fails with ErrTokenInvalid, ErrTokenExpired or
	// ErrTokenRevoked.
	Validate(ctx context.Context, tokenString, expectedType string) (uuid.UUID, error)

	// Refresh validates a refresh token and reissues a pair: a new access
	// token plus the refresh claims signed anew. The refresh token keeps its
	// original identifier and expiry; it is not rotated.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)

	// Revoke verifies the refresh token and durably records its identifier
	// in the revocation store. Revoking twice is not an error.
	Revoke(ctx context.Context, refreshToken string) error

	// AccessTokenDuration returns the configured access token lifetime.
	AccessTokenDuration() time.Duration

	// RefreshTokenDuration returns the configured refresh token lifetime.
	RefreshTokenDuration() time.Duration
}
