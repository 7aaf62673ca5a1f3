package service

import (
	"context"
	"errors"
	"testing"

	"roomfeed/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRepositories() (Repositories, *repository.MockRoomRepository, *repository.MockTemperatureRepository, *repository.MockPostRepository, *repository.MockLikeRepository, *repository.MockCacheRepository) {
	rooms := &repository.MockRoomRepository{}
	temps := &repository.MockTemperatureRepository{}
	posts := &repository.MockPostRepository{}
	likes := &repository.MockLikeRepository{}
	cache := &repository.MockCacheRepository{}
	return Repositories{Rooms: rooms, Temperatures: temps, Posts: posts, Likes: likes, Cache: cache},
		rooms, temps, posts, likes, cache
}

func TestSystemService_Health(t *testing.T) {
	okPing := func(context.Context) error { return nil }
	badPing := func(context.Context) error { return errors.New("down") }
	redisStats := func(context.Context) (map[string]string, error) { return nil, nil }

	tcases := []struct {
		name       string
		pingDB     func(context.Context) error
		withRedis  bool
		redisErr   error
		wantStatus string
		wantRedis  string
		wantDB     string
	}{
		{"all up", okPing, true, nil, "ok", "connected", "connected"},
		{"redis disabled", okPing, false, nil, "ok", "disabled", "connected"},
		{"redis down", okPing, true, errors.New("refused"), "degraded", "unreachable", "connected"},
		{"database down", badPing, false, nil, "degraded", "disabled", "unreachable"},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			repos, _, _, _, _, cache := newRepositories()
			stats := redisStats
			if tc.withRedis {
				cache.On("Ping", mock.Anything).Return(tc.redisErr).Once()
			} else {
				stats = nil
			}

			health := NewSystemService(repos, tc.pingDB, stats, nil).Health(context.Background())

			assert.Equal(t, tc.wantStatus, health.Status)
			assert.Equal(t, tc.wantStatus == "ok", health.OK())
			assert.Equal(t, tc.wantRedis, health.Services["redis"])
			assert.Equal(t, tc.wantDB, health.Services["database"])
			assert.NotEmpty(t, health.Timestamp)
			cache.AssertExpectations(t)
		})
	}
}

func TestSystemService_Stats(t *testing.T) {
	repos, rooms, temps, posts, likes, _ := newRepositories()
	rooms.On("Count", mock.Anything).Return(int64(2), nil)
	temps.On("Count", mock.Anything).Return(int64(10), nil)
	posts.On("Count", mock.Anything).Return(int64(4), nil)
	likes.On("Count", mock.Anything).Return(int64(7), nil)

	redisStats := func(context.Context) (map[string]string, error) {
		return map[string]string{"redis_version": "7.2.0"}, nil
	}
	workers := func() map[string]bool { return map[string]bool{"upload_sweep": true} }

	stats, err := NewSystemService(repos, nil, redisStats, workers).Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]int64{"rooms": 2, "temperatures": 10, "posts": 4, "likes": 7}, stats.Database)
	assert.Equal(t, "7.2.0", stats.Redis["redis_version"])
	assert.True(t, stats.Workers["upload_sweep"])
}

func TestSystemService_Stats_CountFailure(t *testing.T) {
	repos, rooms, temps, _, _, _ := newRepositories()
	rooms.On("Count", mock.Anything).Return(int64(2), nil)
	temps.On("Count", mock.Anything).Return(int64(0), errors.New("db down"))

	_, err := NewSystemService(repos, nil, nil, nil).Stats(context.Background())
	assert.ErrorContains(t, err, "temperatures")
}

func TestSystemService_Stats_NoWorkers(t *testing.T) {
	repos, rooms, temps, posts, likes, _ := newRepositories()
	for _, m := range []interface{ On(string, ...interface{}) *mock.Call }{rooms, temps, posts, likes} {
		m.On("Count", mock.Anything).Return(int64(0), nil)
	}

	stats, err := NewSystemService(repos, nil, nil, nil).Stats(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stats.Workers)
	assert.Nil(t, stats.Redis)
}
