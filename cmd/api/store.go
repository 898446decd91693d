package main

import (
	"context"
	"fmt"

	"github.com/baharkarakas/sample-app/internal/config"
	"github.com/baharkarakas/sample-app/internal/db"
	repo "github.com/baharkarakas/sample-app/internal/repository"
	"github.com/baharkarakas/sample-app/internal/repository/gormstore"
	"github.com/baharkarakas/sample-app/internal/repository/postgres"
)

// openStore connects the configured backend. The pgx backend runs the goose
// migrations when migrate is set; the GORM backends always auto-migrate.
func openStore(ctx context.Context, cfg config.StoreConfig, migrate bool) (repo.Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.MaxConns)
		if err != nil {
			return repo.Store{}, fmt.Errorf("db connect: %w", err)
		}
		if migrate {
			if err := db.RunMigrations(ctx, pool); err != nil {
				pool.Close()
				return repo.Store{}, fmt.Errorf("migrations: %w", err)
			}
		}
		return postgres.NewRepositories(pool), nil
	case config.DriverSQLite, config.DriverGormPostgres:
		gc := gormstore.Config{Dialect: gormstore.DialectSQLite, SQLitePath: cfg.SQLitePath}
		if cfg.Driver == config.DriverGormPostgres {
			gc = gormstore.Config{Dialect: gormstore.DialectPostgres, PostgresDSN: cfg.DatabaseURL}
		}
		s, err := gormstore.Open(gc)
		if err != nil {
			return repo.Store{}, err
		}
		return s.Repositories(), nil
	}
	return repo.Store{}, fmt.Errorf("unsupported store driver: %q", cfg.Driver)
}
