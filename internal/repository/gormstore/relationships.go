package gormstore

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/baharkarakas/sample-app/internal/models"
)

type relationshipsRepo struct{ db *gorm.DB }

func (r *relationshipsRepo) Create(ctx context.Context, followerID, followedID int64) (models.Relationship, error) {
	rel := models.Relationship{FollowerID: followerID, FollowedID: followedID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(&rel).Error
	if err != nil {
		return models.Relationship{}, mapErr(err)
	}
	return r.Find(ctx, followerID, followedID)
}

func (r *relationshipsRepo) GetByID(ctx context.Context, id int64) (models.Relationship, error) {
	var rel models.Relationship
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rel).Error
	return rel, mapErr(err)
}

func (r *relationshipsRepo) Find(ctx context.Context, followerID, followedID int64) (models.Relationship, error) {
	var rel models.Relationship
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		First(&rel).Error
	return rel, mapErr(err)
}

func (r *relationshipsRepo) Delete(ctx context.Context, followerID, followedID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Relationship{})
	return res.RowsAffected > 0, res.Error
}

func (r *relationshipsRepo) related(ctx context.Context, joinCol, whereCol string, userID int64, limit, offset int) ([]models.User, error) {
	out := []models.User{}
	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.*").
		Joins("JOIN relationships ON relationships."+joinCol+" = users.id").
		Where("relationships."+whereCol+" = ?", userID).
		Order("relationships.id ASC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}

func (r *relationshipsRepo) Following(ctx context.Context, userID int64, limit, offset int) ([]models.User, error) {
	return r.related(ctx, "followed_id", "follower_id", userID, limit, offset)
}

func (r *relationshipsRepo) Followers(ctx context.Context, userID int64, limit, offset int) ([]models.User, error) {
	return r.related(ctx, "follower_id", "followed_id", userID, limit, offset)
}

func (r *relationshipsRepo) CountFollowing(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Relationship{}).Where("follower_id = ?", userID).Count(&n).Error
	return n, err
}

func (r *relationshipsRepo) CountFollowers(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Relationship{}).Where("followed_id = ?", userID).Count(&n).Error
	return n, err
}
