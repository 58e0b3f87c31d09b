package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"invoicely-backend/internal/auth"
	"invoicely-backend/internal/models"
)

type RefreshTokenRepository struct {
	db *gorm.DB
}

var _ auth.RefreshTokenStore = (*RefreshTokenRepository)(nil)

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, userID, token string, expiresAt time.Time) (*models.RefreshToken, error) {
	record := &models.RefreshToken{
		ID:        uuid.New().String(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}

	result := r.db.WithContext(ctx).Create(record)
	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Failed to create refresh token")
		return nil, result.Error
	}
	return record, nil
}

func (r *RefreshTokenRepository) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	var record models.RefreshToken
	result := r.db.WithContext(ctx).Where("token = ?", token).First(&record)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, nil
	}

	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Failed to get refresh token")
		return nil, result.Error
	}

	return &record, nil
}

func (r *RefreshTokenRepository) FindByUserID(ctx context.Context, userID string) ([]models.RefreshToken, error) {
	var records []models.RefreshToken
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&records).Error
	return records, err
}

// DeleteByToken removes the record holding this exact token string.
// Deleting an absent token is not an error.
func (r *RefreshTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	result := r.db.WithContext(ctx).Where("token = ?", token).Delete(&models.RefreshToken{})
	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Failed to delete refresh token")
	}
	return result.Error
}

// DeleteByUserID removes every refresh token owned by the user.
func (r *RefreshTokenRepository) DeleteByUserID(ctx context.Context, userID string) error {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.RefreshToken{})
	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Failed to delete user refresh tokens")
	}
	return result.Error
}

// DeleteExpired removes lapsed tokens and reports how many were removed.
func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at < ?", time.Now()).Delete(&models.RefreshToken{})
	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Failed to delete expired refresh tokens")
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
