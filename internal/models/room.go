package models

type Room struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:text;not null" json:"name"`
}
