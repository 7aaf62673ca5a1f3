package service

import (
	"context"
	"fmt"
	"time"

	"roomfeed/internal/repository"
)

type SystemService interface {
	Health(ctx context.Context) *Health
	Stats(ctx context.Context) (*Stats, error)
}

type Health struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

func (h *Health) OK() bool {
	return h.Status == "ok"
}

type Stats struct {
	Database map[string]int64  `json:"database"`
	Redis    map[string]string `json:"redis,omitempty"`
	Workers  map[string]bool   `json:"workers"`
}

// Repositories groups the store access the system endpoints report on.
type Repositories struct {
	Rooms        repository.RoomRepository
	Temperatures repository.TemperatureRepository
	Posts        repository.PostRepository
	Likes        repository.LikeRepository
	Cache        repository.CacheRepository
}

type systemService struct {
	repos      Repositories
	pingDB     func(ctx context.Context) error
	redisStats func(ctx context.Context) (map[string]string, error)
	workers    func() map[string]bool
	now        func() time.Time
}

// NewSystemService wires the health and stats endpoints. redisStats may be
// nil when Redis is disabled; workers reports the background workers.
func NewSystemService(
	repos Repositories,
	pingDB func(ctx context.Context) error,
	redisStats func(ctx context.Context) (map[string]string, error),
	workers func() map[string]bool,
) SystemService {
	return &systemService{
		repos:      repos,
		pingDB:     pingDB,
		redisStats: redisStats,
		workers:    workers,
		now:        time.Now,
	}
}

func (s *systemService) Health(ctx context.Context) *Health {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	health := &Health{
		Status:    "ok",
		Timestamp: s.now().UTC().Format(time.RFC3339),
		Services:  map[string]string{"api": "running"},
	}

	if err := s.pingDB(ctx); err != nil {
		health.Status = "degraded"
		health.Services["database"] = "unreachable"
	} else {
		health.Services["database"] = "connected"
	}

	if s.redisStats == nil {
		health.Services["redis"] = "disabled"
	} else if err := s.repos.Cache.Ping(ctx); err != nil {
		health.Status = "degraded"
		health.Services["redis"] = "unreachable"
	} else {
		health.Services["redis"] = "connected"
	}

	return health
}

func (s *systemService) Stats(ctx context.Context) (*Stats, error) {
	counters := []struct {
		name  string
		count func(context.Context) (int64, error)
	}{
		{"rooms", s.repos.Rooms.Count},
		{"temperatures", s.repos.Temperatures.Count},
		{"posts", s.repos.Posts.Count},
		{"likes", s.repos.Likes.Count},
	}

	stats := &Stats{
		Database: make(map[string]int64, len(counters)),
		Workers:  map[string]bool{},
	}
	if s.workers != nil {
		stats.Workers = s.workers()
	}
	for _, c := range counters {
		n, err := c.count(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", c.name, err)
		}
		stats.Database[c.name] = n
	}

	if s.redisStats != nil {
		// Redis stats are informational; a failure leaves them out
		if redisStats, err := s.redisStats(ctx); err == nil {
			stats.Redis = redisStats
		}
	}

	return stats, nil
}
