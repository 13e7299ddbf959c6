package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pranav-2399/nexus-website/internal/domain/model"
)

// testStores bundles one in-memory database and every store over it.
type testStores struct {
	DB         *gorm.DB
	Events     EventStore
	Team       TeamStore
	Highlights HighlightStore
	Feedback   FeedbackStore
}

func setupTestDB(t *testing.T) *testStores {
	t.Helper()

	settings := Settings{
		Driver:       DriverSQLite,
		DSN:          "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
	}
	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")
	t.Cleanup(func() { _ = CloseDB(db) })

	require.NoError(t, Migrate(context.Background(), db, settings), "Failed to migrate schema")

	return &testStores{
		DB:         db,
		Events:     NewEventStore(db),
		Team:       NewTeamStore(db),
		Highlights: NewHighlightStore(db),
		Feedback:   NewFeedbackStore(db),
	}
}

func newTestEvent(t *testing.T, title string, start time.Time, now time.Time) *model.Event {
	t.Helper()
	e := &model.Event{
		ID:    uuid.NewString(),
		Title: title,
		Slug:  model.Slugify(title),
		Date:  start.Format("2006-01-02"),
		Time:  start.Format("15:04"),
	}
	e.Normalize()
	require.NoError(t, e.DeriveStatus(time.UTC, now))
	return e
}
