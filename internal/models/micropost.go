package models

import "time"

type Micropost struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Content   string    `json:"content" gorm:"size:140;not null"`
	UserID    int64     `json:"user_id" gorm:"not null;index:idx_microposts_user_created,priority:1"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_microposts_user_created,priority:2"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

func (Micropost) TableName() string { return "microposts" }
