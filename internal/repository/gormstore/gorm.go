// Package gormstore implements the repositories on GORM, backed by SQLite
// (single node, tests) or PostgreSQL.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/baharkarakas/sample-app/internal/models"
	"github.com/baharkarakas/sample-app/internal/repository"
)

// Dialect selects the database backend.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// MemoryPath opens a private in-memory SQLite database.
const MemoryPath = ":memory:"

type Config struct {
	Dialect Dialect
	// SQLitePath is a file path or MemoryPath.
	SQLitePath string
	// PostgresDSN is used when Dialect is DialectPostgres.
	PostgresDSN string
}

func (c *Config) ApplyDefaults() {
	if c.Dialect == "" {
		c.Dialect = DialectSQLite
	}
	if c.Dialect == DialectSQLite && c.SQLitePath == "" {
		c.SQLitePath = MemoryPath
	}
}

func (c *Config) Validate() error {
	switch c.Dialect {
	case DialectSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("sqlite path is required")
		}
	case DialectPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("postgres dsn is required")
		}
	default:
		return fmt.Errorf("unsupported dialect: %s", c.Dialect)
	}
	return nil
}

// Store holds the GORM handle shared by all repositories.
type Store struct {
	db      *gorm.DB
	dialect Dialect
}

// Open connects and migrates the schema.
func Open(cfg Config) (*Store, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid store configuration: %w", err)
	}

	var dialector gorm.Dialector
	switch cfg.Dialect {
	case DialectSQLite:
		path := cfg.SQLitePath
		if path != MemoryPath {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		dialector = sqlite.Open(path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	case DialectPostgres:
		dialector = postgres.Open(cfg.PostgresDSN)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Dialect == DialectSQLite && cfg.SQLitePath == MemoryPath {
		// every new connection to :memory: would be a fresh, empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		return nil, fmt.Errorf("failed to run database migration: %w", err)
	}
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower ON users (lower(email))`).Error; err != nil {
		return nil, fmt.Errorf("failed to create email index: %w", err)
	}

	return &Store{db: db, dialect: cfg.Dialect}, nil
}

// Repositories exposes the store through the repository interfaces.
func (s *Store) Repositories() repository.Store {
	return repository.Store{
		Users:         &usersRepo{db: s.db},
		Microposts:    &micropostsRepo{db: s.db},
		Relationships: &relationshipsRepo{db: s.db},
		AuditLogs:     &auditLogsRepo{db: s.db},
		Ping:          s.Ping,
		Close:         s.Close,
	}
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "violates foreign key constraint")
}

// mapErr converts GORM and driver errors to the repository sentinels.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repository.ErrNotFound
	case isUniqueConstraintError(err):
		return repository.ErrDuplicate
	case isForeignKeyError(err):
		return repository.ErrNotFound
	}
	return err
}
