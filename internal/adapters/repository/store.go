// Package repository persists site content through GORM.
package repository

import (
	"context"
	"time"

	"github.com/pranav-2399/nexus-website/internal/domain/model"
	"github.com/pranav-2399/nexus-website/internal/domain/types"
)

// EventQuery filters GET /api/events.
type EventQuery struct {
	Status    string // upcoming, past or empty for all
	// Now, when set, decides Status from starts_at instead of the stored
	// status column, which lags until MarkPast runs.
	Now       time.Time
	Pinned    *bool
	WithMedia bool // only events with a banner or gallery images
	types.Page
}

// HighlightQuery filters the highlights strip.
type HighlightQuery struct {
	Type string
	types.Page
}

// FeedbackQuery filters the admin feedback inbox.
type FeedbackQuery struct {
	UnreadOnly bool
	types.Page
}

// EventStore provides read/write access to events.
type EventStore interface {
	Create(ctx context.Context, e *model.Event) error
	Get(ctx context.Context, id string) (*model.Event, error)
	GetBySlug(ctx context.Context, slug string) (*model.Event, error)
	// List orders upcoming events soonest first and everything else newest first.
	List(ctx context.Context, q EventQuery) ([]*model.Event, error)
	Update(ctx context.Context, e *model.Event) error
	Delete(ctx context.Context, id string) error
	// SlugExists reports whether slug is taken by an event other than excludeID.
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	// MarkPast flips upcoming events that started at or before now.
	MarkPast(ctx context.Context, now time.Time) (int64, error)
}

// TeamStore provides read/write access to team members.
type TeamStore interface {
	Create(ctx context.Context, m *model.TeamMember) error
	Get(ctx context.Context, id string) (*model.TeamMember, error)
	// List returns members by display order, optionally for one department.
	List(ctx context.Context, department string) ([]*model.TeamMember, error)
	Update(ctx context.Context, m *model.TeamMember) error
	Delete(ctx context.Context, id string) error
}

// HighlightStore provides read/write access to highlights.
type HighlightStore interface {
	Create(ctx context.Context, h *model.Highlight) error
	Get(ctx context.Context, id string) (*model.Highlight, error)
	List(ctx context.Context, q HighlightQuery) ([]*model.Highlight, error)
	Update(ctx context.Context, h *model.Highlight) error
	Delete(ctx context.Context, id string) error
}

// FeedbackStore provides read/write access to feedback.
type FeedbackStore interface {
	Create(ctx context.Context, f *model.Feedback) error
	Get(ctx context.Context, id string) (*model.Feedback, error)
	// List returns one page, newest first, and the total matching count.
	List(ctx context.Context, q FeedbackQuery) ([]*model.Feedback, int64, error)
	MarkRead(ctx context.Context, id string, read bool) error
	Delete(ctx context.Context, id string) error
}
