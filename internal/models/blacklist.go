package models

import "time"

// BlacklistedToken is an access token revoked before its natural expiry.
// Its presence with a future expires_at means the token must be rejected
// regardless of the token's own embedded expiry.
type BlacklistedToken struct {
	Token     string    `json:"token" gorm:"primaryKey;type:text"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime;not null"`
}

// TableName specifies the table name for GORM
func (BlacklistedToken) TableName() string {
	return "token_blacklist"
}
