package auth

import (
	"context"
	"time"

	"invoicely-backend/internal/models"
)

// UserStore is the read-side contract of the external user-account owner.
// Lookups return (nil, nil) when no user matches.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// RefreshTokenStore persists single-use rotation tokens. Deletes are
// idempotent: removing an absent token is not an error.
type RefreshTokenStore interface {
	Create(ctx context.Context, userID, token string, expiresAt time.Time) (*models.RefreshToken, error)
	FindByToken(ctx context.Context, token string) (*models.RefreshToken, error)
	FindByUserID(ctx context.Context, userID string) ([]models.RefreshToken, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteByUserID(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// TokenBlacklist persists access tokens revoked before their natural
// expiry. Add is an upsert; re-adding a token replaces its expiry.
type TokenBlacklist interface {
	Add(ctx context.Context, token string, expiresAt time.Time) error
	Exists(ctx context.Context, token string) (bool, error)
	DeleteExpired(ctx context.Context) (int64, error)
}
