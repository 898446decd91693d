package gormstore

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/baharkarakas/sample-app/internal/models"
	"github.com/baharkarakas/sample-app/internal/repository"
)

type micropostsRepo struct{ db *gorm.DB }

const newestFirst = "created_at DESC, id DESC"

func (r *micropostsRepo) Create(ctx context.Context, p models.Micropost) (models.Micropost, error) {
	p.ID = 0
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&p).Error; err != nil {
		return models.Micropost{}, mapErr(err)
	}
	return p, nil
}

func (r *micropostsRepo) GetByID(ctx context.Context, id int64) (models.Micropost, error) {
	var p models.Micropost
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	return p, mapErr(err)
}

func (r *micropostsRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Micropost{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *micropostsRepo) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]models.Micropost, error) {
	out := []models.Micropost{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(newestFirst).
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}

func (r *micropostsRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Micropost{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

// followedBy scopes microposts to userID and everyone userID follows, with
// the followed ids resolved by a subquery instead of being loaded first.
func (r *micropostsRepo) followedBy(ctx context.Context, userID int64) *gorm.DB {
	followed := r.db.Model(&models.Relationship{}).Select("followed_id").Where("follower_id = ?", userID)
	return r.db.WithContext(ctx).
		Model(&models.Micropost{}).
		Where("user_id IN (?) OR user_id = ?", followed, userID)
}

func (r *micropostsRepo) Feed(ctx context.Context, userID int64, limit, offset int) ([]models.Micropost, error) {
	out := []models.Micropost{}
	err := r.followedBy(ctx, userID).Order(newestFirst).Limit(limit).Offset(offset).Find(&out).Error
	return out, err
}

func (r *micropostsRepo) CountFeed(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.followedBy(ctx, userID).Count(&n).Error
	return n, err
}
