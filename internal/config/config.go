package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	App struct {
		Port        string
		Debug       bool
		FrontendURL string
	}
	DB struct {
		Driver          string
		URL             string
		Host            string
		Port            string
		User            string
		Password        string
		DBName          string
		SSLMode         string
		MaxIdleConns    int
		MaxOpenConns    int
		ConnMaxLifetime time.Duration
		Debug           bool
	}
	Redis struct {
		Enabled  bool
		Host     string
		Port     string
		Password string
		DB       int
		TTL      time.Duration
	}
	Uploads struct {
		Dir      string
		MaxBytes int64
	}
	Workers struct {
		UploadSweepEnabled  bool
		UploadSweepInterval time.Duration
		UploadSweepGrace    time.Duration
	}
	RateLimit struct {
		RequestsPerSecond int
		Burst             int
	}
	Log struct {
		File       string
		MaxSizeMB  int
		MaxBackups int
		MaxAgeDays int
	}
}

func Load() *Config {
	cfg := &Config{}

	// App
	cfg.App.Port = getEnv("PORT", "8080")
	cfg.App.Debug = getEnvAsBool("DEBUG", false)
	cfg.App.FrontendURL = getEnv("FRONTEND_URL", "http://localhost:3000")

	// DB
	cfg.DB.Driver = getEnv("DB_DRIVER", "postgres")
	cfg.DB.URL = getEnv("DATABASE_URL", "")
	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", defaultDBPort(cfg.DB.Driver))
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.DB.DBName = getEnv("DB_NAME", "roomfeed")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.DB.MaxIdleConns = getEnvAsInt("DB_MAX_IDLE_CONNS", 10)
	cfg.DB.MaxOpenConns = getEnvAsInt("DB_MAX_OPEN_CONNS", 100)
	cfg.DB.ConnMaxLifetime = getEnvAsDuration("DB_CONN_MAX_LIFETIME", time.Hour)
	cfg.DB.Debug = cfg.App.Debug

	// Redis
	cfg.Redis.Enabled = getEnvAsBool("REDIS_ENABLED", true)
	cfg.Redis.Host = getEnv("REDIS_HOST", "localhost")
	cfg.Redis.Port = getEnv("REDIS_PORT", "6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", 0)
	cfg.Redis.TTL = getEnvAsDuration("CACHE_TTL", 60*time.Second)

	// Uploads
	cfg.Uploads.Dir = getEnv("UPLOAD_DIR", "uploads")
	cfg.Uploads.MaxBytes = int64(getEnvAsInt("UPLOAD_MAX_BYTES", 10<<20))

	// Workers
	cfg.Workers.UploadSweepEnabled = getEnvAsBool("UPLOAD_SWEEP_ENABLED", true)
	cfg.Workers.UploadSweepInterval = getEnvAsDuration("WORKER_UPLOAD_SWEEP_INTERVAL", time.Hour)
	cfg.Workers.UploadSweepGrace = getEnvAsDuration("WORKER_UPLOAD_SWEEP_GRACE", 10*time.Minute)

	// Rate Limit
	cfg.RateLimit.RequestsPerSecond = getEnvAsInt("RATE_LIMIT_RPS", 10)
	cfg.RateLimit.Burst = getEnvAsInt("RATE_LIMIT_BURST", 20)

	// Log
	cfg.Log.File = getEnv("LOG_FILE", "")
	cfg.Log.MaxSizeMB = getEnvAsInt("LOG_MAX_SIZE_MB", 50)
	cfg.Log.MaxBackups = getEnvAsInt("LOG_MAX_BACKUPS", 3)
	cfg.Log.MaxAgeDays = getEnvAsInt("LOG_MAX_AGE_DAYS", 28)

	return cfg
}

// Validate reports settings the process cannot start with.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be one of postgres, mysql, sqlite; got %q", c.DB.Driver)
	}
	if c.App.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.Uploads.Dir == "" {
		return fmt.Errorf("UPLOAD_DIR cannot be empty")
	}
	if c.Uploads.MaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive")
	}
	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if c.Workers.UploadSweepEnabled && c.Workers.UploadSweepInterval <= 0 {
		return fmt.Errorf("WORKER_UPLOAD_SWEEP_INTERVAL must be positive")
	}
	return nil
}

func defaultDBPort(driver string) string {
	if driver == "mysql" {
		return "3306"
	}
	return "5432"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if dur, err := time.ParseDuration(value); err == nil {
			return dur
		}
	}
	return defaultValue
}
