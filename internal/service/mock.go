package service

import (
	"context"
	"time"

	"roomfeed/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockRoomService struct {
	mock.Mock
}

func (m *MockRoomService) CreateRoom(ctx context.Context, name string) (*models.Room, error) {
	args := m.Called(ctx, name)
	if room, ok := args.Get(0).(*models.Room); ok {
		return room, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRoomService) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	args := m.Called(ctx, id)
	if room, ok := args.Get(0).(*models.Room); ok {
		return room, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRoomService) ListRooms(ctx context.Context) ([]models.Room, error) {
	args := m.Called(ctx)
	if rooms, ok := args.Get(0).([]models.Room); ok {
		return rooms, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockTemperatureService struct {
	mock.Mock
}

func (m *MockTemperatureService) AddTemperature(ctx context.Context, input AddTemperatureInput) (*models.Temperature, error) {
	args := m.Called(ctx, input)
	if reading, ok := args.Get(0).(*models.Temperature); ok {
		return reading, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTemperatureService) GetAverage(ctx context.Context) (*models.TemperatureStats, error) {
	args := m.Called(ctx)
	if stats, ok := args.Get(0).(*models.TemperatureStats); ok {
		return stats, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTemperatureService) GetRoomAverage(ctx context.Context, roomID uint) (*models.TemperatureStats, error) {
	args := m.Called(ctx, roomID)
	if stats, ok := args.Get(0).(*models.TemperatureStats); ok {
		return stats, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTemperatureService) ExportTemperatures(ctx context.Context, format string, from, to time.Time) (*ExportFile, error) {
	args := m.Called(ctx, format, from, to)
	if file, ok := args.Get(0).(*ExportFile); ok {
		return file, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, input CreatePostInput) (*models.Post, error) {
	args := m.Called(ctx, input)
	if post, ok := args.Get(0).(*models.Post); ok {
		return post, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostService) CreatePostWithImage(ctx context.Context, input CreatePostInput, image ImageUpload) (*models.Post, error) {
	args := m.Called(ctx, input, image)
	if post, ok := args.Get(0).(*models.Post); ok {
		return post, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostService) ListPosts(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	if posts, ok := args.Get(0).([]models.Post); ok {
		return posts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	args := m.Called(ctx, id)
	if post, ok := args.Get(0).(*models.Post); ok {
		return post, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostService) LikePost(ctx context.Context, postID uint) (*models.Like, error) {
	args := m.Called(ctx, postID)
	if like, ok := args.Get(0).(*models.Like); ok {
		return like, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostService) CountLikes(ctx context.Context, postID uint) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

type MockSystemService struct {
	mock.Mock
}

func (m *MockSystemService) Health(ctx context.Context) *Health {
	args := m.Called(ctx)
	return args.Get(0).(*Health)
}

func (m *MockSystemService) Stats(ctx context.Context) (*Stats, error) {
	args := m.Called(ctx)
	if stats, ok := args.Get(0).(*Stats); ok {
		return stats, args.Error(1)
	}
	return nil, args.Error(1)
}
