package repository

import (
	"context"

	"roomfeed/internal/models"

	"gorm.io/gorm"
)

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	ImageURLs(ctx context.Context) ([]string, error)
	ImageInUse(ctx context.Context, url string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return translate(r.db.WithContext(ctx).Create(post).Error)
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// List returns every post, newest first. Equal timestamps fall back to id.
func (r *postRepository) List(ctx context.Context) ([]models.Post, error) {
	posts := make([]models.Post, 0)
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&posts).
		Error
	return posts, translate(err)
}

func (r *postRepository) ImageURLs(ctx context.Context) ([]string, error) {
	var urls []string
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("image_url IS NOT NULL").
		Pluck("image_url", &urls).
		Error
	return urls, translate(err)
}

// ImageInUse reports whether any post points at url.
func (r *postRepository) ImageInUse(ctx context.Context, url string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("image_url = ?", url).
		Count(&count).
		Error
	return count > 0, translate(err)
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Count(&count).
		Error
	return count, translate(err)
}
