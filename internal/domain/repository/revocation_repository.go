package repository

import (
	"context"

	"taskboard/internal/domain/entity"

	"github.com/google/uuid"
)

// RevocationRepository defines the operations for the refresh-token
// revocation store (the blacklist). Records are written on logout and must be
// durable before the logout response is returned; they are never deleted.
type RevocationRepository interface {
	// Add durably records a refresh token identifier as revoked. Adding an
	// already-revoked identifier is not an error: revocation is idempotent.
	Add(ctx context.Context, record *entity.RevokedToken) error

	// IsRevoked reports whether a refresh token identifier has been revoked.
	IsRevoked(ctx context.Context, tokenID uuid.UUID) (bool, error)
}
