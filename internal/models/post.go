package models

import (
	"time"
)

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"type:text;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ImageURL  *string   `gorm:"type:text" json:"image_url"`
	CreatedAt time.Time `gorm:"not null;index:,sort:desc" json:"created_at"`
}
