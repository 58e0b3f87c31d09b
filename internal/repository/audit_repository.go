package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"invoicely-backend/internal/audit"
	"invoicely-backend/internal/models"
)

// AuditLogRepository persists audit events to PostgreSQL. It is the sink
// behind the async dispatcher; failures here are the dispatcher's to log.
type AuditLogRepository struct {
	db *gorm.DB
}

var _ audit.Sink = (*AuditLogRepository)(nil)

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Log(ctx context.Context, event audit.Event) error {
	record := &models.AuditLog{
		ID:         uuid.New().String(),
		EntityType: event.EntityType,
		EntityID:   event.EntityID,
		Action:     event.Action,
		UserID:     event.UserID,
		Changes:    event.Changes,
		IPAddress:  event.IPAddress,
		UserAgent:  event.UserAgent,
		CreatedAt:  event.CreatedAt,
	}

	return r.db.WithContext(ctx).Create(record).Error
}
