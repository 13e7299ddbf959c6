package models

import (
	"time"

	"github.com/pranav-2399/nexus-website/internal/domain/model"
)

// FeedbackModel is the feedback table row.
type FeedbackModel struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	Name      string `gorm:"type:varchar(100);not null;default:''"`
	Email     string `gorm:"type:varchar(254);not null;default:''"`
	Message   string `gorm:"type:text;not null"`
	Rating    int    `gorm:"not null;default:0"`
	EventID   string `gorm:"index;type:varchar(64);not null;default:''"`
	Read      bool   `gorm:"column:is_read;index;not null"`
	CreatedAt time.Time
}

// TableName overrides the pluralized default.
func (FeedbackModel) TableName() string { return "feedback" }

// FromDomain copies f into the row.
func (m *FeedbackModel) FromDomain(f *model.Feedback) {
	m.ID = f.ID
	m.Name = f.Name
	m.Email = f.Email
	m.Message = f.Message
	m.Rating = f.Rating
	m.EventID = f.EventID
	m.Read = f.Read
	m.CreatedAt = f.CreatedAt
}

// ToDomain converts the row into domain feedback.
func (m *FeedbackModel) ToDomain() *model.Feedback {
	return &model.Feedback{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Message:   m.Message,
		Rating:    m.Rating,
		EventID:   m.EventID,
		Read:      m.Read,
		CreatedAt: m.CreatedAt,
	}
}

// All lists every table model, in creation order, for AutoMigrate.
func All() []any {
	return []any{&EventModel{}, &TeamMemberModel{}, &HighlightModel{}, &FeedbackModel{}}
}
