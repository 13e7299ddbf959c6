package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pranav-2399/nexus-website/internal/adapters/repository"
	"github.com/pranav-2399/nexus-website/internal/domain/dedupe"
	"github.com/pranav-2399/nexus-website/internal/domain/model"
	"github.com/pranav-2399/nexus-website/internal/domain/types"
	"github.com/pranav-2399/nexus-website/pkg/logger"
	"github.com/pranav-2399/nexus-website/pkg/metrics"
)

// SubmitFeedback stores a visitor message. key is the client's idempotency
// key; without one the message content is the key. A repeat inside the
// dedupe window returns duplicate=true and stores nothing.
func (s *Service) SubmitFeedback(ctx context.Context, key string, f *model.Feedback) (fb *model.Feedback, duplicate bool, err error) {
	f.Normalize()
	if err := f.Validate(); err != nil {
		return nil, false, err
	}
	if f.EventID != "" {
		if _, err := s.repos.Events.Get(ctx, f.EventID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return nil, false, fmt.Errorf("%w: eventId does not match an event", model.ErrInvalid)
			}
			return nil, false, err
		}
	}

	if key == "" {
		key = dedupe.ContentKey(f.Name, f.Email, f.Message)
	}
	if s.deduper.SeenAndRecord(ctx, key) {
		metrics.RecordFeedbackDuplicate()
		s.logger.Debug(ctx, "duplicate feedback skipped", logger.String("key", key))
		return nil, true, nil
	}

	f.ID = uuid.NewString()
	f.Read = false
	f.CreatedAt = s.now()
	if err := s.repos.Feedback.Create(ctx, f); err != nil {
		s.deduper.Unrecord(ctx, key)
		return nil, false, err
	}
	metrics.RecordFeedbackSubmitted()

	s.notify(ctx, &model.Notification{
		Topic:  model.TopicFeedback,
		Title:  f.Name,
		Author: f.Name,
		Body:   f.Message,
	})
	return f, false, nil
}

// ListFeedback returns one page of the inbox, newest first.
func (s *Service) ListFeedback(ctx context.Context, unreadOnly bool, limit, offset int) (types.List[*model.Feedback], error) {
	page := types.NewPage(limit, offset)
	items, total, err := s.repos.Feedback.List(ctx, repository.FeedbackQuery{UnreadOnly: unreadOnly, Page: page})
	if err != nil {
		return types.List[*model.Feedback]{}, err
	}
	if items == nil {
		items = []*model.Feedback{}
	}
	return types.List[*model.Feedback]{Items: items, Total: total, Page: page}, nil
}

// MarkFeedbackRead sets the read flag and returns the updated message.
func (s *Service) MarkFeedbackRead(ctx context.Context, id string, read bool) (*model.Feedback, error) {
	if err := s.repos.Feedback.MarkRead(ctx, id, read); err != nil {
		return nil, err
	}
	metrics.RecordContentOperation("feedback", "update")
	return s.repos.Feedback.Get(ctx, id)
}

// DeleteFeedback removes a message.
func (s *Service) DeleteFeedback(ctx context.Context, id string) error {
	if err := s.repos.Feedback.Delete(ctx, id); err != nil {
		return err
	}
	metrics.RecordContentOperation("feedback", "delete")
	return nil
}
