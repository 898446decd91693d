package gormstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/baharkarakas/sample-app/internal/models"
)

type auditLogsRepo struct{ db *gorm.DB }

func (r *auditLogsRepo) Create(ctx context.Context, l models.AuditLog) error {
	l.ID = 0
	return r.db.WithContext(ctx).Create(&l).Error
}

func (r *auditLogsRepo) ListByEntity(ctx context.Context, entityType, entityID string) ([]models.AuditLog, error) {
	out := []models.AuditLog{}
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}
