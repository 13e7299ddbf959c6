package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/pranav-2399/nexus-website/internal/adapters/repository/models"
	"github.com/pranav-2399/nexus-website/internal/domain/model"
)

const entityHighlight = "highlight"

type gormHighlightStore struct {
	db *gorm.DB
}

// NewHighlightStore returns a HighlightStore backed by db.
func NewHighlightStore(db *gorm.DB) HighlightStore {
	return &gormHighlightStore{db: db}
}

func (s *gormHighlightStore) Create(ctx context.Context, h *model.Highlight) error {
	defer observe(entityHighlight, time.Now())
	row := &models.HighlightModel{}
	row.FromDomain(h)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return translate(entityHighlight, err)
	}
	h.CreatedAt, h.UpdatedAt = row.CreatedAt, row.UpdatedAt
	return nil
}

func (s *gormHighlightStore) Get(ctx context.Context, id string) (*model.Highlight, error) {
	defer observe(entityHighlight, time.Now())
	var row models.HighlightModel
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, translate(entityHighlight, err)
	}
	return row.ToDomain(), nil
}

func (s *gormHighlightStore) List(ctx context.Context, q HighlightQuery) ([]*model.Highlight, error) {
	defer observe(entityHighlight, time.Now())
	tx := s.db.WithContext(ctx).Model(&models.HighlightModel{})
	if q.Type != "" {
		tx = tx.Where("highlight_type = ?", q.Type)
	}
	tx = tx.Order("published_on DESC").Order("created_at DESC")
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}
	var rows []models.HighlightModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, translate(entityHighlight, err)
	}
	out := make([]*model.Highlight, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

func (s *gormHighlightStore) Update(ctx context.Context, h *model.Highlight) error {
	defer observe(entityHighlight, time.Now())
	row := &models.HighlightModel{}
	row.FromDomain(h)
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = time.Now().UTC()
	}
	res := s.db.WithContext(ctx).
		Model(&models.HighlightModel{}).
		Where("id = ?", h.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(row)
	if res.Error != nil {
		return translate(entityHighlight, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound(entityHighlight)
	}
	h.UpdatedAt = row.UpdatedAt
	return nil
}

func (s *gormHighlightStore) Delete(ctx context.Context, id string) error {
	defer observe(entityHighlight, time.Now())
	res := s.db.WithContext(ctx).Delete(&models.HighlightModel{}, "id = ?", id)
	if res.Error != nil {
		return translate(entityHighlight, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound(entityHighlight)
	}
	return nil
}
