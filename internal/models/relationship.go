package models

import "time"

// Relationship is a directed follow edge: FollowerID follows FollowedID.
type Relationship struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	FollowerID int64     `json:"follower_id" gorm:"not null;uniqueIndex:idx_relationships_pair,priority:1"`
	FollowedID int64     `json:"followed_id" gorm:"not null;uniqueIndex:idx_relationships_pair,priority:2;index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Follower User `json:"-" gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	Followed User `json:"-" gorm:"foreignKey:FollowedID;constraint:OnDelete:CASCADE"`
}

func (Relationship) TableName() string { return "relationships" }
