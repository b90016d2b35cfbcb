package entity

import (
	"time"

	"github.com/google/uuid"
)

// RevokedToken is the durable record of a refresh token that has been
// explicitly invalidated. It is keyed by the token's unique identifier (jti)
// and is never deleted: once a refresh token is revoked it must never
// validate again, even before its natural expiry.
type RevokedToken struct {
	TokenID   uuid.UUID // The jti claim of the revoked refresh token.
	RevokedAt time.Time // Timestamp of the revocation.
}
