package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/baharkarakas/sample-app/internal/repository"
)

func NewRepositories(pool *pgxpool.Pool) repo.Store {
	return repo.Store{
		Users:         &usersRepo{pool},
		Microposts:    &micropostsRepo{pool},
		Relationships: &relationshipsRepo{pool},
		AuditLogs:     &auditLogsRepo{pool},
		Ping:          func(ctx context.Context) error { return pool.Ping(ctx) },
		Close:         func() error { pool.Close(); return nil },
	}
}
