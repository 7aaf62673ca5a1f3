package repository

import (
	"context"

	"roomfeed/internal/models"

	"gorm.io/gorm"
)

type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	GetByID(ctx context.Context, id uint) (*models.Room, error)
	List(ctx context.Context) ([]models.Room, error)
	Count(ctx context.Context) (int64, error)
}

type roomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) Create(ctx context.Context, room *models.Room) error {
	return translate(r.db.WithContext(ctx).Create(room).Error)
}

func (r *roomRepository) GetByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).First(&room, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

func (r *roomRepository) List(ctx context.Context) ([]models.Room, error) {
	rooms := make([]models.Room, 0)
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&rooms).
		Error
	return rooms, translate(err)
}

func (r *roomRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Room{}).
		Count(&count).
		Error
	return count, translate(err)
}
