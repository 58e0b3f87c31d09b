package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"invoicely-backend/internal/auth"
	"invoicely-backend/internal/models"
)

// TokenBlacklistRepository stores revoked access tokens in PostgreSQL.
// Used when no redis address is configured.
type TokenBlacklistRepository struct {
	db *gorm.DB
}

var _ auth.TokenBlacklist = (*TokenBlacklistRepository)(nil)

func NewTokenBlacklistRepository(db *gorm.DB) *TokenBlacklistRepository {
	return &TokenBlacklistRepository{db: db}
}

// Add upserts the token; re-adding replaces the stored expiry.
func (r *TokenBlacklistRepository) Add(ctx context.Context, token string, expiresAt time.Time) error {
	entry := &models.BlacklistedToken{
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"expires_at"}),
	}).Create(entry)

	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Failed to blacklist token")
	}
	return result.Error
}

// Exists reports whether the token is currently revoked. An entry found
// past its expiry is removed on the spot and reported absent.
func (r *TokenBlacklistRepository) Exists(ctx context.Context, token string) (bool, error) {
	var entry models.BlacklistedToken
	result := r.db.WithContext(ctx).Where("token = ?", token).First(&entry)

	if result.Error == gorm.ErrRecordNotFound {
		return false, nil
	}

	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Failed to check token blacklist")
		return false, result.Error
	}

	if !entry.ExpiresAt.After(time.Now()) {
		if err := r.db.WithContext(ctx).Where("token = ?", token).Delete(&models.BlacklistedToken{}).Error; err != nil {
			log.Error().Err(err).Msg("Failed to evict expired blacklist entry")
		}
		return false, nil
	}

	return true, nil
}

// DeleteExpired removes lapsed entries and reports how many were removed.
func (r *TokenBlacklistRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at < ?", time.Now()).Delete(&models.BlacklistedToken{})
	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Failed to delete expired blacklist entries")
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
