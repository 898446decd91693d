package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baharkarakas/sample-app/internal/models"
	"github.com/baharkarakas/sample-app/internal/repository"
)

type micropostsRepo struct{ pool *pgxpool.Pool }

const micropostCols = `id, content, user_id, created_at, updated_at`

// followedBy selects the users followed by $1, plus $1 itself.
const followedBy = `user_id IN (SELECT followed_id FROM relationships WHERE follower_id = $1) OR user_id = $1`

func scanMicropost(row pgx.Row) (models.Micropost, error) {
	var p models.Micropost
	err := row.Scan(&p.ID, &p.Content, &p.UserID, &p.CreatedAt, &p.UpdatedAt)
	return p, mapErr(err)
}

func collectMicroposts(rows pgx.Rows) ([]models.Micropost, error) {
	defer rows.Close()

	out := []models.Micropost{}
	for rows.Next() {
		p, err := scanMicropost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *micropostsRepo) Create(ctx context.Context, p models.Micropost) (models.Micropost, error) {
	return scanMicropost(r.pool.QueryRow(ctx,
		`INSERT INTO microposts(content, user_id) VALUES($1,$2) RETURNING `+micropostCols,
		p.Content, p.UserID,
	))
}

func (r *micropostsRepo) GetByID(ctx context.Context, id int64) (models.Micropost, error) {
	return scanMicropost(r.pool.QueryRow(ctx, `SELECT `+micropostCols+` FROM microposts WHERE id=$1`, id))
}

func (r *micropostsRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM microposts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *micropostsRepo) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]models.Micropost, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+micropostCols+`
		   FROM microposts
		  WHERE user_id=$1
		  ORDER BY created_at DESC, id DESC
		  LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	return collectMicroposts(rows)
}

func (r *micropostsRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM microposts WHERE user_id=$1`, userID).Scan(&n)
	return n, err
}

func (r *micropostsRepo) Feed(ctx context.Context, userID int64, limit, offset int) ([]models.Micropost, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+micropostCols+`
		   FROM microposts
		  WHERE `+followedBy+`
		  ORDER BY created_at DESC, id DESC
		  LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	return collectMicroposts(rows)
}

func (r *micropostsRepo) CountFeed(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM microposts WHERE `+followedBy, userID).Scan(&n)
	return n, err
}
