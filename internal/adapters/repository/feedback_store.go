package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/pranav-2399/nexus-website/internal/adapters/repository/models"
	"github.com/pranav-2399/nexus-website/internal/domain/model"
)

const entityFeedback = "feedback"

type gormFeedbackStore struct {
	db *gorm.DB
}

// NewFeedbackStore returns a FeedbackStore backed by db.
func NewFeedbackStore(db *gorm.DB) FeedbackStore {
	return &gormFeedbackStore{db: db}
}

func (s *gormFeedbackStore) Create(ctx context.Context, f *model.Feedback) error {
	defer observe(entityFeedback, time.Now())
	row := &models.FeedbackModel{}
	row.FromDomain(f)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return translate(entityFeedback, err)
	}
	f.CreatedAt = row.CreatedAt
	return nil
}

func (s *gormFeedbackStore) Get(ctx context.Context, id string) (*model.Feedback, error) {
	defer observe(entityFeedback, time.Now())
	var row models.FeedbackModel
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, translate(entityFeedback, err)
	}
	return row.ToDomain(), nil
}

func (s *gormFeedbackStore) List(ctx context.Context, q FeedbackQuery) ([]*model.Feedback, int64, error) {
	defer observe(entityFeedback, time.Now())
	tx := s.db.WithContext(ctx).Model(&models.FeedbackModel{})
	if q.UnreadOnly {
		tx = tx.Where("is_read = ?", false)
	}
	tx = tx.Session(&gorm.Session{})
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, translate(entityFeedback, err)
	}

	page := tx.Order("created_at DESC").Order("id")
	if q.Limit > 0 {
		page = page.Limit(q.Limit)
	}
	if q.Offset > 0 {
		page = page.Offset(q.Offset)
	}
	var rows []models.FeedbackModel
	if err := page.Find(&rows).Error; err != nil {
		return nil, 0, translate(entityFeedback, err)
	}
	out := make([]*model.Feedback, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, total, nil
}

func (s *gormFeedbackStore) MarkRead(ctx context.Context, id string, read bool) error {
	defer observe(entityFeedback, time.Now())
	res := s.db.WithContext(ctx).
		Model(&models.FeedbackModel{}).
		Where("id = ?", id).
		Update("is_read", read)
	if res.Error != nil {
		return translate(entityFeedback, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound(entityFeedback)
	}
	return nil
}

func (s *gormFeedbackStore) Delete(ctx context.Context, id string) error {
	defer observe(entityFeedback, time.Now())
	res := s.db.WithContext(ctx).Delete(&models.FeedbackModel{}, "id = ?", id)
	if res.Error != nil {
		return translate(entityFeedback, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound(entityFeedback)
	}
	return nil
}
