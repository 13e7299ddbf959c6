package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/pranav-2399/nexus-website/internal/domain/model"
)

// Sentinel kinds for repository setup errors.
var (
	ErrUnsupportedDriver = errors.New("unsupported database driver")
	ErrMigrate           = errors.New("migration failed")
)

const pgUniqueViolation = "23505"

// translate maps driver errors onto domain sentinels. Anything else keeps the
// driver's message so it can be forwarded to the client.
func translate(entity string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", entity, model.ErrNotFound)
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w: %v", entity, model.ErrConflict, err)
	default:
		return fmt.Errorf("%s: %w", entity, err)
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func notFound(entity string) error {
	return fmt.Errorf("%s: %w", entity, model.ErrNotFound)
}
