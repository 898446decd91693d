package gormstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/baharkarakas/sample-app/internal/models"
	"github.com/baharkarakas/sample-app/internal/repository"
)

type usersRepo struct{ db *gorm.DB }

func (r *usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = 0
	if err := r.db.WithContext(ctx).Create(&u).Error; err != nil {
		return models.User{}, mapErr(err)
	}
	return u, nil
}

func (r *usersRepo) GetByID(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	return u, mapErr(err)
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where("lower(email) = lower(?)", email).First(&u).Error
	return u, mapErr(err)
}

func (r *usersRepo) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	out := []models.User{}
	err := r.db.WithContext(ctx).Order("id ASC").Limit(limit).Offset(offset).Find(&out).Error
	return out, err
}

func (r *usersRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error
	return n, err
}

func (r *usersRepo) Update(ctx context.Context, u models.User) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", u.ID).
		Updates(map[string]any{
			"name":               u.Name,
			"email":              u.Email,
			"encrypted_password": u.EncryptedPassword,
			"salt":               u.Salt,
			"admin":              u.Admin,
		})
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *usersRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u models.User
		if err := tx.Where("id = ?", id).First(&u).Error; err != nil {
			return mapErr(err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Micropost{}).Error; err != nil {
			return err
		}
		if err := tx.Where("follower_id = ? OR followed_id = ?", id, id).Delete(&models.Relationship{}).Error; err != nil {
			return err
		}
		return tx.Delete(&u).Error
	})
}
