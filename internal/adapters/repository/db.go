package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const defaultSlowQuery = 200 * time.Millisecond

// NewDBConnection opens the database named by settings and applies pool limits.
func NewDBConnection(settings Settings, opts ...Option) (*gorm.DB, error) {
	o := connOptions{slowThreshold: defaultSlowQuery}
	for _, opt := range opts {
		opt(&o)
	}

	var dialector gorm.Dialector
	switch settings.Driver {
	case DriverPostgres:
		dialector = postgres.Open(settings.DSN)
	case DriverSQLite:
		dsn := settings.DSN
		if dsn == "" {
			dsn = ":memory:"
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, settings.Driver)
	}

	cfg := &gorm.Config{NowFunc: func() time.Time { return time.Now().UTC() }}
	if o.log != nil {
		cfg.Logger = newGormLogger(o.log, o.slowThreshold)
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", settings.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get raw DB connection: %w", err)
	}
	if settings.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(settings.MaxOpenConns)
	}
	if settings.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(settings.MaxIdleConns)
	}
	return db, nil
}

// Ping checks the database is reachable.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// CloseDB closes the database connection.
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}
