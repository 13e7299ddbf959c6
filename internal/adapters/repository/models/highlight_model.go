package models

import (
	"time"

	"github.com/pranav-2399/nexus-website/internal/domain/model"
)

// HighlightModel is the highlights table row.
type HighlightModel struct {
	ID          string `gorm:"primaryKey;type:varchar(36)"`
	Title       string `gorm:"type:varchar(200);not null"`
	Description string `gorm:"type:text;not null;default:''"`
	Type        string `gorm:"column:highlight_type;index;type:varchar(20);not null"`
	Date        string `gorm:"column:published_on;index;type:varchar(10);not null"`
	Thumbnail   string `gorm:"type:text;not null;default:''"`
	Link        string `gorm:"type:text;not null;default:''"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides the pluralized default.
func (HighlightModel) TableName() string { return "highlights" }

// FromDomain copies h into the row.
func (m *HighlightModel) FromDomain(h *model.Highlight) {
	m.ID = h.ID
	m.Title = h.Title
	m.Description = h.Description
	m.Type = h.Type
	m.Date = h.Date
	m.Thumbnail = h.Thumbnail
	m.Link = h.Link
	m.CreatedAt = h.CreatedAt
	m.UpdatedAt = h.UpdatedAt
}

// ToDomain converts the row into a domain highlight.
func (m *HighlightModel) ToDomain() *model.Highlight {
	return &model.Highlight{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Type:        m.Type,
		Date:        m.Date,
		Thumbnail:   m.Thumbnail,
		Link:        m.Link,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
