package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pranav-2399/nexus-website/internal/adapters/repository"
	"github.com/pranav-2399/nexus-website/internal/domain/model"
	"github.com/pranav-2399/nexus-website/internal/domain/types"
	"github.com/pranav-2399/nexus-website/pkg/logger"
	"github.com/pranav-2399/nexus-website/pkg/metrics"
)

const (
	maxSlugSuffix  = 1000
	maxSaveRetries = 3
)

// EventFilter narrows ListEvents.
type EventFilter struct {
	Status string
	Pinned *bool
	Limit  int
	Offset int
}

// ListEvents returns events matching f with presentation fields filled in.
func (s *Service) ListEvents(ctx context.Context, f EventFilter) ([]*model.Event, error) {
	switch f.Status {
	case "", model.StatusUpcoming, model.StatusPast:
	default:
		return nil, fmt.Errorf("%w: status must be %q or %q", model.ErrInvalid, model.StatusUpcoming, model.StatusPast)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = types.MaxLimit
	}
	now := s.now()
	events, err := s.repos.Events.List(ctx, repository.EventQuery{
		Status: f.Status,
		Now:    now,
		Pinned: f.Pinned,
		Page:   types.NewPage(limit, f.Offset),
	})
	if err != nil {
		return nil, err
	}
	return s.present(events, now), nil
}

// ListGallery returns events that have a banner or gallery images.
func (s *Service) ListGallery(ctx context.Context) ([]*model.Event, error) {
	events, err := s.repos.Events.List(ctx, repository.EventQuery{
		WithMedia: true,
		Page:      types.NewPage(types.MaxLimit, 0),
	})
	if err != nil {
		return nil, err
	}
	return s.present(events, s.now()), nil
}

// present renders events and corrects statuses the refresher has not caught
// up with yet.
func (s *Service) present(events []*model.Event, now time.Time) []*model.Event {
	for _, e := range events {
		s.render(e, now)
	}
	return events
}

func (s *Service) render(e *model.Event, now time.Time) {
	if !e.StartsAt.IsZero() {
		e.Status = model.StatusFor(e.StartsAt, now)
	}
	e.Render(now)
}

// GetEvent fetches one event by id.
func (s *Service) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	e, err := s.repos.Events.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.render(e, s.now())
	return e, nil
}

// GetEventBySlug fetches one event by its slug.
func (s *Service) GetEventBySlug(ctx context.Context, slug string) (*model.Event, error) {
	e, err := s.repos.Events.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	s.render(e, s.now())
	return e, nil
}

// CreateEvent stores a new event and announces it.
func (s *Service) CreateEvent(ctx context.Context, e *model.Event) (*model.Event, error) {
	now := s.now()
	if err := s.prepare(e, now); err != nil {
		return nil, err
	}
	e.ID = uuid.NewString()
	e.CreatedAt = now
	e.UpdatedAt = now

	var err error
	for attempt := 0; attempt < maxSaveRetries; attempt++ {
		if e.Slug, err = s.uniqueSlug(ctx, model.Slugify(e.Title), ""); err != nil {
			return nil, err
		}
		if err = s.repos.Events.Create(ctx, e); !errors.Is(err, model.ErrConflict) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	metrics.RecordContentOperation("event", "create")
	s.logger.Info(ctx, "event created", logger.String("id", e.ID), logger.String("slug", e.Slug))

	s.notify(ctx, &model.Notification{
		Topic: model.TopicEvent,
		Title: e.Title,
		Body:  e.Description,
		Link:  s.eventLink(e.Slug),
	})
	s.render(e, now)
	return e, nil
}

// UpdateEvent replaces every field of event id with e.
func (s *Service) UpdateEvent(ctx context.Context, id string, e *model.Event) (*model.Event, error) {
	existing, err := s.repos.Events.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, existing, e)
}

// PatchEvent applies the set fields of p to event id.
func (s *Service) PatchEvent(ctx context.Context, id string, p model.EventPatch) (*model.Event, error) {
	if p.Empty() {
		return nil, fmt.Errorf("%w: nothing to update", model.ErrInvalid)
	}
	existing, err := s.repos.Events.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next := *existing
	p.Apply(&next)
	return s.save(ctx, existing, &next)
}

// save writes next over existing, keeping identity fields, and schedules
// removal of images next no longer references.
func (s *Service) save(ctx context.Context, existing, next *model.Event) (*model.Event, error) {
	now := s.now()
	if err := s.prepare(next, now); err != nil {
		return nil, err
	}
	next.ID = existing.ID
	next.CreatedAt = existing.CreatedAt
	next.UpdatedAt = now

	base := model.Slugify(next.Title)
	next.Slug = existing.Slug
	if base != model.Slugify(existing.Title) {
		slug, err := s.uniqueSlug(ctx, base, existing.ID)
		if err != nil {
			return nil, err
		}
		next.Slug = slug
	}

	if err := s.repos.Events.Update(ctx, next); err != nil {
		return nil, err
	}
	metrics.RecordContentOperation("event", "update")
	s.deleteObjects(ctx, removed(existing.ImageURLs(), next.ImageURLs()))
	s.render(next, now)
	return next, nil
}

// DeleteEvent removes an event and its stored images.
func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	existing, err := s.repos.Events.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repos.Events.Delete(ctx, id); err != nil {
		return err
	}
	metrics.RecordContentOperation("event", "delete")
	s.logger.Info(ctx, "event deleted", logger.String("id", id))
	s.deleteObjects(ctx, existing.ImageURLs())
	return nil
}

func (s *Service) prepare(e *model.Event, now time.Time) error {
	e.Normalize()
	if err := e.Validate(); err != nil {
		return err
	}
	return e.DeriveStatus(s.loc, now)
}

// uniqueSlug returns base, or base-2, base-3, ... whichever is free.
func (s *Service) uniqueSlug(ctx context.Context, base, excludeID string) (string, error) {
	candidate := base
	for i := 2; i <= maxSlugSuffix; i++ {
		taken, err := s.repos.Events.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", fmt.Errorf("%w: no free slug for %q", model.ErrConflict, base)
}
