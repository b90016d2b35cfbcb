package model

import (
	"time"

	"github.com/google/uuid"
)

// RevokedTokenModel mirrors the 'revoked_tokens' table: the refresh-token
// blacklist, keyed by the token's jti claim. Rows are written on logout and
// never deleted.
type RevokedTokenModel struct {
	TokenID   uuid.UUID `gorm:"type:uuid;primary_key"`
	RevokedAt time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (RevokedTokenModel) TableName() string {
	return "revoked_tokens"
}
