package models

import (
	"time"
)

type Like struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	PostID  uint      `gorm:"not null;index" json:"post_id"`
	LikedAt time.Time `gorm:"not null" json:"liked_at"`
	Post    *Post     `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}
