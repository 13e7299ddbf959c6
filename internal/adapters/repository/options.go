package repository

import (
	"time"

	"github.com/pranav-2399/nexus-website/pkg/logger"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Settings selects and tunes the database connection.
type Settings struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

type connOptions struct {
	log           logger.Logger
	slowThreshold time.Duration
}

// Option applies a configuration option to NewDBConnection.
type Option func(*connOptions)

// WithLogger routes GORM's query log through l.
func WithLogger(l logger.Logger) Option {
	return func(o *connOptions) {
		if l != nil {
			o.log = l
		}
	}
}

// WithSlowQueryThreshold logs queries slower than d as warnings.
func WithSlowQueryThreshold(d time.Duration) Option {
	return func(o *connOptions) {
		if d > 0 {
			o.slowThreshold = d
		}
	}
}
