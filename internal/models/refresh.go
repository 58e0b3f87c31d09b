package models

import "time"

// RefreshToken is a single-use rotation token. It is valid only while a row
// with its exact token string exists and expires_at is in the future.
type RefreshToken struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"userId" gorm:"type:varchar(36);not null;index"`
	Token     string    `json:"token" gorm:"type:text;not null;uniqueIndex"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime;not null"`
}

// TableName specifies the table name for GORM
func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

// IsExpired reports whether the token's stored expiry has passed.
func (t *RefreshToken) IsExpired() bool {
	return !t.ExpiresAt.After(time.Now())
}
