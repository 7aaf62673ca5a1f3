package redis

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

type Config struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func Connect(config Config) (*redis.Client, error) {
	addr := fmt.Sprintf("%s:%s", config.Host, config.Port)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     config.Password,
		DB:           config.DB,
		PoolSize:     100,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
		IdleTimeout:  5 * time.Minute,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	version := "unknown"
	if info, err := client.Info(ctx, "server").Result(); err != nil {
		log.Printf("Failed to get Redis info: %v", err)
	} else if v, ok := parseInfo(info)["redis_version"]; ok {
		version = v
	}
	log.Printf("Redis connected: %s (version %s)", addr, version)

	return client, nil
}

// GetStats returns a subset of INFO for the system stats endpoint.
func GetStats(ctx context.Context, client *redis.Client) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	info, err := client.Info(ctx).Result()
	if err != nil {
		return nil, err
	}

	all := parseInfo(info)
	stats := make(map[string]string)

	targetMetrics := []string{
		"redis_version",
		"connected_clients",
		"used_memory_human",
		"used_memory_peak_human",
		"total_connections_received",
		"total_commands_processed",
		"keyspace_hits",
		"keyspace_misses",
		"uptime_in_seconds",
	}

	for _, target := range targetMetrics {
		if value, ok := all[target]; ok {
			stats[target] = value
		}
	}

	return stats, nil
}

func parseInfo(info string) map[string]string {
	values := make(map[string]string)
	for _, line := range strings.Split(info, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' {
			continue
		}
		if key, value, found := strings.Cut(line, ":"); found {
			values[key] = value
		}
	}
	return values
}
