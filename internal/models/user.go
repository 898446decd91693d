package models

import "time"

type User struct {
	ID                int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name              string    `json:"name" gorm:"size:50;not null"`
	Email             string    `json:"email" gorm:"size:255;not null"`
	EncryptedPassword string    `json:"-" gorm:"not null"`
	Salt              string    `json:"-" gorm:"not null"`
	Admin             bool      `json:"admin" gorm:"not null;default:false"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// Same reports whether u and o are the same persisted account.
func (u *User) Same(o *User) bool {
	if u == nil || o == nil {
		return false
	}
	return u.ID != 0 && u.ID == o.ID
}
