package services

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/baharkarakas/sample-app/internal/models"
	repo "github.com/baharkarakas/sample-app/internal/repository"
	"github.com/baharkarakas/sample-app/internal/worker"
)

// Auditor appends audit log entries, off the request path when a worker
// pool is available.
type Auditor struct {
	logs repo.AuditLogs
	wp   *worker.Pool
}

func NewAuditor(logs repo.AuditLogs, wp *worker.Pool) *Auditor {
	return &Auditor{logs: logs, wp: wp}
}

func (a *Auditor) Record(entityType string, entityID int64, action string, details map[string]any) {
	if a == nil || a.logs == nil {
		return
	}
	id := strconv.FormatInt(entityID, 10)
	entry := models.AuditLog{
		EntityType: entityType,
		EntityID:   &id,
		Action:     action,
		Details:    details,
	}
	write := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.logs.Create(ctx, entry); err != nil {
			slog.Warn("audit log write failed", "entity", entityType, "action", action, "err", err)
		}
	}
	if a.wp == nil || !a.wp.Submit(write) {
		write()
	}
}
