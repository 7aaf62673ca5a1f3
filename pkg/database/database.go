package database

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"roomfeed/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

type Config struct {
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

// DSN builds the driver specific connection string. URL wins over the
// discrete fields when set.
func DSN(config Config) (string, error) {
	switch config.Driver {
	case DriverPostgres:
		if config.URL != "" {
			return config.URL, nil
		}
		return fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode,
		), nil

	case DriverMySQL:
		if config.URL != "" {
			return config.URL, nil
		}
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			config.User, config.Password, config.Host, config.Port, config.DBName,
		), nil

	case DriverSQLite:
		dsn := config.URL
		if dsn == "" {
			dsn = config.DBName + ".db"
		}
		// foreign keys are off by default in SQLite and cascades depend on them
		if !strings.Contains(dsn, "foreign_keys") {
			sep := "?"
			if strings.Contains(dsn, "?") {
				sep = "&"
			}
			dsn += sep + "_pragma=foreign_keys(1)"
		}
		return dsn, nil

	default:
		return "", fmt.Errorf("unsupported database driver %q", config.Driver)
	}
}

func dialector(config Config) (gorm.Dialector, error) {
	dsn, err := DSN(config)
	if err != nil {
		return nil, err
	}

	switch config.Driver {
	case DriverPostgres:
		return postgres.Open(dsn), nil
	case DriverMySQL:
		return mysql.Open(dsn), nil
	default:
		return sqlite.Open(dsn), nil
	}
}

func Connect(config Config) (*gorm.DB, error) {
	dial, err := dialector(config)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Warn
	if config.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dial, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Pool settings
	maxIdle, maxOpen := config.MaxIdleConns, config.MaxOpenConns
	if maxIdle <= 0 {
		maxIdle = 10
	}
	if maxOpen <= 0 {
		maxOpen = 100
	}
	// a single SQLite connection keeps in-memory databases alive and serializes writers
	if config.Driver == DriverSQLite {
		maxIdle, maxOpen = 1, 1
	}
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetMaxOpenConns(maxOpen)
	if config.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)
	}

	log.Printf("Database connected successfully (driver: %s)", config.Driver)
	return db, nil
}

// Migrate creates the schema once at startup. AutoMigrate only adds what is
// missing, so it is safe to run on every boot.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Room{},
		&models.Temperature{},
		&models.Post{},
		&models.Like{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate models: %w", err)
	}

	log.Println("Database migration completed successfully")
	return nil
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
