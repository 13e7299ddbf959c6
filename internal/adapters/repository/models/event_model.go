package models

import (
	"time"

	"github.com/pranav-2399/nexus-website/internal/domain/model"
)

// EventModel is the events table row.
type EventModel struct {
	ID               string             `gorm:"primaryKey;type:varchar(36)"`
	Slug             string             `gorm:"uniqueIndex;type:varchar(255);not null"`
	Title            string             `gorm:"type:varchar(200);not null"`
	Description      string             `gorm:"type:text;not null;default:''"`
	Date             string             `gorm:"column:event_date;type:varchar(10);not null"`
	Time             string             `gorm:"column:event_time;type:varchar(5);not null;default:''"`
	Location         string             `gorm:"type:text;not null;default:''"`
	BannerImage      string             `gorm:"type:text;not null;default:''"`
	PosterImage      string             `gorm:"type:text;not null;default:''"`
	IsPinned         bool               `gorm:"index;not null"`
	Status           string             `gorm:"index:idx_events_status_starts_at,priority:1;type:varchar(16);not null"`
	StartsAt         time.Time          `gorm:"index:idx_events_status_starts_at,priority:2;not null"`
	Gallery          []string           `gorm:"serializer:json;type:text;not null"`
	Stats            []model.Stat       `gorm:"serializer:json;type:text;not null"`
	Participants     string             `gorm:"type:text;not null;default:''"`
	Outcomes         []string           `gorm:"serializer:json;type:text;not null"`
	SocialPosts      []model.SocialPost `gorm:"serializer:json;type:text;not null"`
	Results          []model.Result     `gorm:"serializer:json;type:text;not null"`
	RegistrationLink string             `gorm:"type:text;not null;default:''"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName overrides the pluralized default.
func (EventModel) TableName() string { return "events" }

// FromDomain copies e into the row. StartsAt is stored in UTC so text
// comparisons in SQLite order correctly.
func (m *EventModel) FromDomain(e *model.Event) {
	m.ID = e.ID
	m.Slug = e.Slug
	m.Title = e.Title
	m.Description = e.Description
	m.Date = e.Date
	m.Time = e.Time
	m.Location = e.Location
	m.BannerImage = e.BannerImage
	m.PosterImage = e.PosterImage
	m.IsPinned = e.IsPinned
	m.Status = e.Status
	m.StartsAt = e.StartsAt.UTC()
	m.Gallery = e.Gallery
	m.Stats = e.Stats
	m.Participants = e.Participants
	m.Outcomes = e.Outcomes
	m.SocialPosts = e.SocialPosts
	m.Results = e.Results
	m.RegistrationLink = e.RegistrationLink
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// ToDomain converts the row into a normalized domain event.
func (m *EventModel) ToDomain() *model.Event {
	e := &model.Event{
		ID:               m.ID,
		Slug:             m.Slug,
		Title:            m.Title,
		Description:      m.Description,
		Date:             m.Date,
		Time:             m.Time,
		Location:         m.Location,
		BannerImage:      m.BannerImage,
		PosterImage:      m.PosterImage,
		IsPinned:         m.IsPinned,
		Status:           m.Status,
		StartsAt:         m.StartsAt.UTC(),
		Gallery:          m.Gallery,
		Stats:            m.Stats,
		Participants:     m.Participants,
		Outcomes:         m.Outcomes,
		SocialPosts:      m.SocialPosts,
		Results:          m.Results,
		RegistrationLink: m.RegistrationLink,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	e.Normalize()
	return e
}
