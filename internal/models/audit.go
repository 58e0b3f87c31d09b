package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// ChangeSet holds the changed fields of an audited entity as a JSON column.
type ChangeSet map[string]string

// Scan implements the sql.Scanner interface
func (cs *ChangeSet) Scan(value interface{}) error {
	if value == nil {
		*cs = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, cs)
	case string:
		return json.Unmarshal([]byte(v), cs)
	default:
		return errors.New("failed to scan ChangeSet")
	}
}

// Value implements the driver.Valuer interface
func (cs ChangeSet) Value() (driver.Value, error) {
	if cs == nil {
		return nil, nil
	}
	return json.Marshal(cs)
}

// GormDataType implements the GormDataTypeInterface
func (ChangeSet) GormDataType() string {
	return "jsonb"
}

type AuditLog struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	EntityType string    `json:"entityType" gorm:"not null;type:varchar(100);index"`
	EntityID   string    `json:"entityId" gorm:"column:entity_id;not null;type:varchar(36);index"`
	Action     string    `json:"action" gorm:"not null;type:varchar(50);index"`
	UserID     string    `json:"userId" gorm:"type:varchar(36);index"`
	Changes    ChangeSet `json:"changes" gorm:"type:jsonb"`
	IPAddress  string    `json:"ipAddress" gorm:"column:ip_address;type:varchar(45)"`
	UserAgent  string    `json:"userAgent" gorm:"type:varchar(255)"`
	CreatedAt  time.Time `json:"createdAt" gorm:"autoCreateTime;not null;index"`
}

// TableName specifies the table name for GORM
func (AuditLog) TableName() string {
	return "audit_logs"
}
