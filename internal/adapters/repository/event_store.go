package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/pranav-2399/nexus-website/internal/adapters/repository/models"
	"github.com/pranav-2399/nexus-website/internal/domain/model"
	"github.com/pranav-2399/nexus-website/pkg/metrics"
)

const entityEvent = "event"

type gormEventStore struct {
	db *gorm.DB
}

// NewEventStore returns an EventStore backed by db.
func NewEventStore(db *gorm.DB) EventStore {
	return &gormEventStore{db: db}
}

func (s *gormEventStore) Create(ctx context.Context, e *model.Event) error {
	defer observe(entityEvent, time.Now())
	row := &models.EventModel{}
	row.FromDomain(e)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return translate(entityEvent, err)
	}
	e.CreatedAt, e.UpdatedAt = row.CreatedAt, row.UpdatedAt
	return nil
}

func (s *gormEventStore) Get(ctx context.Context, id string) (*model.Event, error) {
	defer observe(entityEvent, time.Now())
	var row models.EventModel
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, translate(entityEvent, err)
	}
	return row.ToDomain(), nil
}

func (s *gormEventStore) GetBySlug(ctx context.Context, slug string) (*model.Event, error) {
	defer observe(entityEvent, time.Now())
	var row models.EventModel
	if err := s.db.WithContext(ctx).First(&row, "slug = ?", slug).Error; err != nil {
		return nil, translate(entityEvent, err)
	}
	return row.ToDomain(), nil
}

func (s *gormEventStore) List(ctx context.Context, q EventQuery) ([]*model.Event, error) {
	defer observe(entityEvent, time.Now())
	tx := s.db.WithContext(ctx).Model(&models.EventModel{})
	switch {
	case q.Status == "":
	case q.Now.IsZero():
		tx = tx.Where("status = ?", q.Status)
	case q.Status == model.StatusUpcoming:
		tx = tx.Where("starts_at > ?", q.Now.UTC())
	default:
		tx = tx.Where("starts_at <= ?", q.Now.UTC())
	}
	if q.Pinned != nil {
		tx = tx.Where("is_pinned = ?", *q.Pinned)
	}
	if q.WithMedia {
		tx = tx.Where("banner_image <> '' OR gallery NOT IN ('', '[]', 'null')")
	}
	if q.Status == model.StatusUpcoming {
		tx = tx.Order("starts_at ASC")
	} else {
		tx = tx.Order("starts_at DESC")
	}
	tx = tx.Order("id")
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}

	var rows []models.EventModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, translate(entityEvent, err)
	}
	out := make([]*model.Event, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

func (s *gormEventStore) Update(ctx context.Context, e *model.Event) error {
	defer observe(entityEvent, time.Now())
	row := &models.EventModel{}
	row.FromDomain(e)
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = time.Now().UTC()
	}
	res := s.db.WithContext(ctx).
		Model(&models.EventModel{}).
		Where("id = ?", e.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(row)
	if res.Error != nil {
		return translate(entityEvent, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound(entityEvent)
	}
	e.UpdatedAt = row.UpdatedAt
	return nil
}

func (s *gormEventStore) Delete(ctx context.Context, id string) error {
	defer observe(entityEvent, time.Now())
	res := s.db.WithContext(ctx).Delete(&models.EventModel{}, "id = ?", id)
	if res.Error != nil {
		return translate(entityEvent, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound(entityEvent)
	}
	return nil
}

func (s *gormEventStore) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	defer observe(entityEvent, time.Now())
	var n int64
	tx := s.db.WithContext(ctx).Model(&models.EventModel{}).Where("slug = ?", slug)
	if excludeID != "" {
		tx = tx.Where("id <> ?", excludeID)
	}
	if err := tx.Count(&n).Error; err != nil {
		return false, translate(entityEvent, err)
	}
	return n > 0, nil
}

func (s *gormEventStore) MarkPast(ctx context.Context, now time.Time) (int64, error) {
	defer observe(entityEvent, time.Now())
	res := s.db.WithContext(ctx).
		Model(&models.EventModel{}).
		Where("status = ? AND starts_at <= ?", model.StatusUpcoming, now.UTC()).
		Updates(map[string]any{"status": model.StatusPast, "updated_at": now.UTC()})
	if res.Error != nil {
		return 0, translate(entityEvent, res.Error)
	}
	return res.RowsAffected, nil
}

func observe(entity string, start time.Time) {
	metrics.RecordRepositoryQueryLatency(entity, float64(time.Since(start).Microseconds())/1000)
}
