package repository

import (
	"context"
	"errors"

	"github.com/baharkarakas/sample-app/internal/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

type Users interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id int64) (models.User, error)
	// GetByEmail matches case-insensitively.
	GetByEmail(ctx context.Context, email string) (models.User, error)
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, u models.User) error
	// Delete removes the user together with its microposts and every
	// relationship it takes part in.
	Delete(ctx context.Context, id int64) error
}

type Microposts interface {
	Create(ctx context.Context, p models.Micropost) (models.Micropost, error)
	GetByID(ctx context.Context, id int64) (models.Micropost, error)
	Delete(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]models.Micropost, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	// Feed returns posts by userID or by anyone userID follows, newest first.
	Feed(ctx context.Context, userID int64, limit, offset int) ([]models.Micropost, error)
	CountFeed(ctx context.Context, userID int64) (int64, error)
}

type Relationships interface {
	// Create inserts the edge; an existing edge is returned unchanged.
	Create(ctx context.Context, followerID, followedID int64) (models.Relationship, error)
	GetByID(ctx context.Context, id int64) (models.Relationship, error)
	Find(ctx context.Context, followerID, followedID int64) (models.Relationship, error)
	// Delete reports whether an edge was removed.
	Delete(ctx context.Context, followerID, followedID int64) (bool, error)
	Following(ctx context.Context, userID int64, limit, offset int) ([]models.User, error)
	Followers(ctx context.Context, userID int64, limit, offset int) ([]models.User, error)
	CountFollowing(ctx context.Context, userID int64) (int64, error)
	CountFollowers(ctx context.Context, userID int64) (int64, error)
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
	ListByEntity(ctx context.Context, entityType, entityID string) ([]models.AuditLog, error)
}

// Store bundles the repositories of one backend.
type Store struct {
	Users         Users
	Microposts    Microposts
	Relationships Relationships
	AuditLogs     AuditLogs

	// Ping checks backend reachability; Close releases it.
	Ping  func(ctx context.Context) error
	Close func() error
}
