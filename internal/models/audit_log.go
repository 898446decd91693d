package models

import "time"

type AuditLog struct {
	ID         int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	EntityType string         `json:"entity_type" gorm:"not null"`
	EntityID   *string        `json:"entity_id"`
	Action     string         `json:"action" gorm:"not null"`
	Details    map[string]any `json:"details" gorm:"serializer:json"`
	CreatedAt  time.Time      `json:"created_at"`
}

func (AuditLog) TableName() string { return "audit_logs" }

// All lists every persisted model, in dependency order.
func All() []any {
	return []any{&User{}, &Micropost{}, &Relationship{}, &AuditLog{}}
}
