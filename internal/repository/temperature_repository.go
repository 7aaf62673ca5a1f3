package repository

import (
	"context"
	"database/sql"
	"time"

	"roomfeed/internal/models"

	"gorm.io/gorm"
)

type TemperatureRepository interface {
	Create(ctx context.Context, temperature *models.Temperature) error
	GetStats(ctx context.Context) (*TemperatureAggregate, error)
	GetRoomStats(ctx context.Context, roomID uint) (*TemperatureAggregate, error)
	GetByDateRange(ctx context.Context, from, to time.Time) ([]models.Temperature, error)
	Count(ctx context.Context) (int64, error)
}

// TemperatureAggregate is the raw aggregate; Average is invalid when no
// reading matched.
type TemperatureAggregate struct {
	Average sql.NullFloat64
	Days    int64
}

type temperatureRepository struct {
	db *gorm.DB
}

func NewTemperatureRepository(db *gorm.DB) TemperatureRepository {
	return &temperatureRepository{db: db}
}

func (r *temperatureRepository) Create(ctx context.Context, temperature *models.Temperature) error {
	return translate(r.db.WithContext(ctx).Create(temperature).Error)
}

func (r *temperatureRepository) GetStats(ctx context.Context) (*TemperatureAggregate, error) {
	return r.aggregate(ctx, func(db *gorm.DB) *gorm.DB { return db })
}

func (r *temperatureRepository) GetRoomStats(ctx context.Context, roomID uint) (*TemperatureAggregate, error) {
	return r.aggregate(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("room_id = ?", roomID)
	})
}

func (r *temperatureRepository) aggregate(ctx context.Context, scope func(*gorm.DB) *gorm.DB) (*TemperatureAggregate, error) {
	var agg TemperatureAggregate

	row := scope(r.db.WithContext(ctx).Model(&models.Temperature{})).
		Select("AVG(temperature)").
		Row()
	if err := row.Scan(&agg.Average); err != nil {
		return nil, translate(err)
	}

	// DATE() exists in Postgres, MySQL and SQLite alike
	row = scope(r.db.WithContext(ctx).Model(&models.Temperature{})).
		Select("COUNT(DISTINCT DATE(date))").
		Row()
	if err := row.Scan(&agg.Days); err != nil {
		return nil, translate(err)
	}

	return &agg, nil
}

func (r *temperatureRepository) GetByDateRange(ctx context.Context, from, to time.Time) ([]models.Temperature, error) {
	temperatures := make([]models.Temperature, 0)
	err := r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", from, to).
		Order("date ASC").
		Find(&temperatures).
		Error
	return temperatures, translate(err)
}

func (r *temperatureRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Temperature{}).
		Count(&count).
		Error
	return count, translate(err)
}
