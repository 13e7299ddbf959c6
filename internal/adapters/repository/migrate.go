package repository

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // postgres:// driver
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"

	"github.com/pranav-2399/nexus-website/internal/adapters/repository/models"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate brings the schema up to date. Postgres runs the versioned SQL
// migrations; SQLite, used locally and in tests, is auto-migrated from the models.
func Migrate(ctx context.Context, db *gorm.DB, settings Settings) error {
	switch settings.Driver {
	case DriverSQLite:
		if err := db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
			return fmt.Errorf("%w: %v", ErrMigrate, err)
		}
		return nil
	case DriverPostgres:
		_, err := RunMigrations(settings.DSN)
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedDriver, settings.Driver)
	}
}

// NewMigrator returns a migrator over the embedded SQL files. dsn must be a
// postgres:// URL. Callers must Close it.
func NewMigrator(dsn string) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("%w: source: %v", ErrMigrate, err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: init: %v", ErrMigrate, err)
	}
	return m, nil
}

// RunMigrations applies all pending migrations and returns the resulting version.
func RunMigrations(dsn string) (uint, error) {
	m, err := NewMigrator(dsn)
	if err != nil {
		return 0, err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("%w: up: %v", ErrMigrate, err)
	}
	version, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, fmt.Errorf("%w: version: %v", ErrMigrate, err)
	}
	return version, nil
}
