package repository

import (
	"context"

	"roomfeed/internal/models"

	"gorm.io/gorm"
)

type LikeRepository interface {
	Create(ctx context.Context, like *models.Like) error
	CountByPost(ctx context.Context, postID uint) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Create(ctx context.Context, like *models.Like) error {
	return translate(r.db.WithContext(ctx).Create(like).Error)
}

func (r *likeRepository) CountByPost(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).
		Error
	return count, translate(err)
}

func (r *likeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Count(&count).
		Error
	return count, translate(err)
}
