package sqlite

import (
	"context"

	"taskboard/internal/domain/entity"
	domainerrors "taskboard/internal/domain/errors"
	"taskboard/internal/domain/repository"
	"taskboard/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// revocationRepository implements the domain.RevocationRepository interface using GORM.
// It backs the refresh-token blacklist.
type revocationRepository struct {
	db *gorm.DB
}

// NewRevocationRepository is the constructor for revocationRepository.
func NewRevocationRepository(db *gorm.DB) repository.RevocationRepository {
	return &revocationRepository{db: db}
}

// Add durably records a refresh token identifier as revoked. Revoking the
// same identifier twice is a no-op, not an error.
func (repo *revocationRepository) Add(ctx context.Context, record *entity.RevokedToken) error {
	recordM := &model.RevokedTokenModel{
		TokenID:   record.TokenID,
		RevokedAt: record.RevokedAt,
	}

	if err := repo.db.WithContext(ctx).Create(recordM).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to record token revocation")
	}

	return nil
}

// IsRevoked reports whether a refresh token identifier has been revoked.
func (repo *revocationRepository) IsRevoked(ctx context.Context, tokenID uuid.UUID) (bool, error) {
	var count int64

	err := repo.db.WithContext(ctx).
		Model(&model.RevokedTokenModel{}).
		Where("token_id = ?", tokenID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to query token revocation")
	}

	return count > 0, nil
}
