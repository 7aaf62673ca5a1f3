package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "DB_PORT", "DATABASE_URL", "UPLOAD_DIR", "CACHE_TTL", "REDIS_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "5432", cfg.DB.Port)
	assert.Equal(t, "uploads", cfg.Uploads.Dir)
	assert.Equal(t, 60*time.Second, cfg.Redis.TTL)
	assert.True(t, cfg.Redis.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DEBUG", "true")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_PORT", "")
	t.Setenv("DATABASE_URL", "root:secret@tcp(db:3306)/blog_db?parseTime=True")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("CACHE_TTL", "5m")
	t.Setenv("UPLOAD_MAX_BYTES", "1024")
	t.Setenv("RATE_LIMIT_RPS", "not-a-number")

	cfg := Load()

	assert.Equal(t, "9000", cfg.App.Port)
	assert.True(t, cfg.App.Debug)
	assert.True(t, cfg.DB.Debug)
	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Equal(t, "3306", cfg.DB.Port)
	assert.Equal(t, "root:secret@tcp(db:3306)/blog_db?parseTime=True", cfg.DB.URL)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, int64(1024), cfg.Uploads.MaxBytes)
	// unparsable values fall back to the default
	assert.Equal(t, 10, cfg.RateLimit.RequestsPerSecond)
}

func TestValidate(t *testing.T) {
	tcases := []struct {
		name   string
		mutate func(c *Config)
		err    bool
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
			err:    false,
		},
		{
			name:   "unknown driver",
			mutate: func(c *Config) { c.DB.Driver = "oracle" },
			err:    true,
		},
		{
			name:   "sqlite driver",
			mutate: func(c *Config) { c.DB.Driver = "sqlite" },
			err:    false,
		},
		{
			name:   "empty upload dir",
			mutate: func(c *Config) { c.Uploads.Dir = "" },
			err:    true,
		},
		{
			name:   "zero burst",
			mutate: func(c *Config) { c.RateLimit.Burst = 0 },
			err:    true,
		},
		{
			name: "sweep enabled without interval",
			mutate: func(c *Config) {
				c.Workers.UploadSweepEnabled = true
				c.Workers.UploadSweepInterval = 0
			},
			err: true,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("DB_DRIVER", "postgres")
			cfg := Load()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.err {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
