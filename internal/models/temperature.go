package models

import (
	"time"
)

type Temperature struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RoomID      uint      `gorm:"not null;index" json:"room_id"`
	Temperature float64   `gorm:"type:double precision;not null" json:"temperature"`
	Date        time.Time `gorm:"column:date;not null;index" json:"date"`
	Room        *Room     `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"-"`
}

// TemperatureStats is the aggregate served by the average endpoints.
// Average stays nil when no reading exists.
type TemperatureStats struct {
	Average *float64 `json:"average"`
	Days    int64    `json:"days"`
}
