package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pranav-2399/nexus-website/internal/adapters/repository"
	"github.com/pranav-2399/nexus-website/internal/domain/model"
	"github.com/pranav-2399/nexus-website/internal/domain/types"
	"github.com/pranav-2399/nexus-website/pkg/metrics"
)

// ListHighlights returns the newest highlights, optionally of one type.
func (s *Service) ListHighlights(ctx context.Context, highlightType string, limit int) ([]*model.Highlight, error) {
	t := model.CanonicalHighlightType(highlightType)
	if t != "" && !isHighlightType(t) {
		return nil, fmt.Errorf("%w: type must be one of %s", model.ErrInvalid, strings.Join(model.HighlightTypes, ", "))
	}
	return s.repos.Highlights.List(ctx, repository.HighlightQuery{Type: t, Page: types.NewPage(limit, 0)})
}

func isHighlightType(t string) bool {
	for _, known := range model.HighlightTypes {
		if t == known {
			return true
		}
	}
	return false
}

// GetHighlight fetches one highlight.
func (s *Service) GetHighlight(ctx context.Context, id string) (*model.Highlight, error) {
	return s.repos.Highlights.Get(ctx, id)
}

// CreateHighlight adds a highlight.
func (s *Service) CreateHighlight(ctx context.Context, h *model.Highlight) (*model.Highlight, error) {
	h.Normalize()
	if err := h.Validate(); err != nil {
		return nil, err
	}
	now := s.now()
	h.ID = uuid.NewString()
	h.CreatedAt = now
	h.UpdatedAt = now
	if err := s.repos.Highlights.Create(ctx, h); err != nil {
		return nil, err
	}
	metrics.RecordContentOperation("highlight", "create")
	return h, nil
}

// UpdateHighlight replaces highlight id with h.
func (s *Service) UpdateHighlight(ctx context.Context, id string, h *model.Highlight) (*model.Highlight, error) {
	existing, err := s.repos.Highlights.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	h.Normalize()
	if err := h.Validate(); err != nil {
		return nil, err
	}
	h.ID = existing.ID
	h.CreatedAt = existing.CreatedAt
	h.UpdatedAt = s.now()
	if err := s.repos.Highlights.Update(ctx, h); err != nil {
		return nil, err
	}
	metrics.RecordContentOperation("highlight", "update")
	s.deleteObjects(ctx, removed([]string{existing.Thumbnail}, []string{h.Thumbnail}))
	return h, nil
}

// DeleteHighlight removes a highlight and its thumbnail.
func (s *Service) DeleteHighlight(ctx context.Context, id string) error {
	existing, err := s.repos.Highlights.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repos.Highlights.Delete(ctx, id); err != nil {
		return err
	}
	metrics.RecordContentOperation("highlight", "delete")
	s.deleteObjects(ctx, []string{existing.Thumbnail})
	return nil
}
