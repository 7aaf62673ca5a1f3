package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"roomfeed/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	tcases := []struct {
		name   string
		config Config
		want   string
		err    bool
	}{
		{
			name: "postgres fields",
			config: Config{
				Driver: DriverPostgres, Host: "db", Port: "5432", User: "u", Password: "p",
				DBName: "roomfeed", SSLMode: "disable",
			},
			want: "host=db port=5432 user=u password=p dbname=roomfeed sslmode=disable TimeZone=UTC",
		},
		{
			name:   "postgres url wins",
			config: Config{Driver: DriverPostgres, URL: "postgres://u:p@db/roomfeed", Host: "ignored"},
			want:   "postgres://u:p@db/roomfeed",
		},
		{
			name: "mysql fields",
			config: Config{
				Driver: DriverMySQL, Host: "db", Port: "3306", User: "root", Password: "secret", DBName: "blog_db",
			},
			want: "root:secret@tcp(db:3306)/blog_db?charset=utf8mb4&parseTime=True&loc=UTC",
		},
		{
			name:   "sqlite from name",
			config: Config{Driver: DriverSQLite, DBName: "roomfeed"},
			want:   "roomfeed.db?_pragma=foreign_keys(1)",
		},
		{
			name:   "sqlite url with query",
			config: Config{Driver: DriverSQLite, URL: "file::memory:?cache=shared"},
			want:   "file::memory:?cache=shared&_pragma=foreign_keys(1)",
		},
		{
			name:   "sqlite pragma already set",
			config: Config{Driver: DriverSQLite, URL: "app.db?_pragma=foreign_keys(0)"},
			want:   "app.db?_pragma=foreign_keys(0)",
		},
		{
			name:   "unknown driver",
			config: Config{Driver: "oracle"},
			err:    true,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			dsn, err := DSN(tc.config)
			if tc.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, dsn)
		})
	}
}

func TestConnectAndMigrate(t *testing.T) {
	db, err := Connect(Config{
		Driver:          DriverSQLite,
		URL:             filepath.Join(t.TempDir(), "test.db"),
		ConnMaxLifetime: time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, Migrate(db))
	// a second run is a no-op
	require.NoError(t, Migrate(db))

	for _, model := range []any{&models.Room{}, &models.Temperature{}, &models.Post{}, &models.Like{}} {
		assert.True(t, db.Migrator().HasTable(model))
	}
	assert.True(t, db.Migrator().HasIndex(&models.Temperature{}, "Date"))

	require.NoError(t, Ping(context.Background(), db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestConnect_UnknownDriver(t *testing.T) {
	_, err := Connect(Config{Driver: "oracle"})
	assert.Error(t, err)
}
