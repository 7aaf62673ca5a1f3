package repository

import (
	"context"
	"time"

	"roomfeed/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) Create(ctx context.Context, room *models.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) GetByID(ctx context.Context, id uint) (*models.Room, error) {
	args := m.Called(ctx, id)
	if room, ok := args.Get(0).(*models.Room); ok {
		return room, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRoomRepository) List(ctx context.Context) ([]models.Room, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Room), args.Error(1)
}

func (m *MockRoomRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockTemperatureRepository struct {
	mock.Mock
}

func (m *MockTemperatureRepository) Create(ctx context.Context, temperature *models.Temperature) error {
	args := m.Called(ctx, temperature)
	return args.Error(0)
}

func (m *MockTemperatureRepository) GetStats(ctx context.Context) (*TemperatureAggregate, error) {
	args := m.Called(ctx)
	if agg, ok := args.Get(0).(*TemperatureAggregate); ok {
		return agg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTemperatureRepository) GetRoomStats(ctx context.Context, roomID uint) (*TemperatureAggregate, error) {
	args := m.Called(ctx, roomID)
	if agg, ok := args.Get(0).(*TemperatureAggregate); ok {
		return agg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTemperatureRepository) GetByDateRange(ctx context.Context, from, to time.Time) ([]models.Temperature, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]models.Temperature), args.Error(1)
}

func (m *MockTemperatureRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	args := m.Called(ctx, id)
	if post, ok := args.Get(0).(*models.Post); ok {
		return post, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) ImageURLs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPostRepository) ImageInUse(ctx context.Context, url string) (bool, error) {
	args := m.Called(ctx, url)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) Create(ctx context.Context, like *models.Like) error {
	args := m.Called(ctx, like)
	return args.Error(0)
}

func (m *MockLikeRepository) CountByPost(ctx context.Context, postID uint) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLikeRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *MockCacheRepository) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
