package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baharkarakas/sample-app/internal/models"
)

type relationshipsRepo struct{ pool *pgxpool.Pool }

const relationshipCols = `id, follower_id, followed_id, created_at, updated_at`

func scanRelationship(row pgx.Row) (models.Relationship, error) {
	var rel models.Relationship
	err := row.Scan(&rel.ID, &rel.FollowerID, &rel.FollowedID, &rel.CreatedAt, &rel.UpdatedAt)
	return rel, mapErr(err)
}

func (r *relationshipsRepo) Create(ctx context.Context, followerID, followedID int64) (models.Relationship, error) {
	const q = `
INSERT INTO relationships (follower_id, followed_id)
VALUES ($1, $2)
ON CONFLICT (follower_id, followed_id) DO UPDATE
SET follower_id = EXCLUDED.follower_id  -- no-op so RETURNING yields the existing edge
RETURNING ` + relationshipCols
	return scanRelationship(r.pool.QueryRow(ctx, q, followerID, followedID))
}

func (r *relationshipsRepo) GetByID(ctx context.Context, id int64) (models.Relationship, error) {
	return scanRelationship(r.pool.QueryRow(ctx, `SELECT `+relationshipCols+` FROM relationships WHERE id=$1`, id))
}

func (r *relationshipsRepo) Find(ctx context.Context, followerID, followedID int64) (models.Relationship, error) {
	return scanRelationship(r.pool.QueryRow(ctx,
		`SELECT `+relationshipCols+` FROM relationships WHERE follower_id=$1 AND followed_id=$2`,
		followerID, followedID,
	))
}

func (r *relationshipsRepo) Delete(ctx context.Context, followerID, followedID int64) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM relationships WHERE follower_id=$1 AND followed_id=$2`, followerID, followedID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *relationshipsRepo) Following(ctx context.Context, userID int64, limit, offset int) ([]models.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT u.id, u.name, u.email, u.encrypted_password, u.salt, u.admin, u.created_at, u.updated_at
		   FROM relationships r
		   JOIN users u ON u.id = r.followed_id
		  WHERE r.follower_id=$1
		  ORDER BY r.id ASC
		  LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func (r *relationshipsRepo) Followers(ctx context.Context, userID int64, limit, offset int) ([]models.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT u.id, u.name, u.email, u.encrypted_password, u.salt, u.admin, u.created_at, u.updated_at
		   FROM relationships r
		   JOIN users u ON u.id = r.follower_id
		  WHERE r.followed_id=$1
		  ORDER BY r.id ASC
		  LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func (r *relationshipsRepo) CountFollowing(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM relationships WHERE follower_id=$1`, userID).Scan(&n)
	return n, err
}

func (r *relationshipsRepo) CountFollowers(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM relationships WHERE followed_id=$1`, userID).Scan(&n)
	return n, err
}
