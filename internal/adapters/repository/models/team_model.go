package models

import (
	"time"

	"github.com/pranav-2399/nexus-website/internal/domain/model"
)

// TeamMemberModel is the team_members table row.
type TeamMemberModel struct {
	ID          string             `gorm:"primaryKey;type:varchar(36)"`
	Name        string             `gorm:"type:varchar(100);not null"`
	Role        string             `gorm:"type:varchar(100);not null"`
	Department  string             `gorm:"index;type:varchar(100);not null"`
	Year        string             `gorm:"column:class_year;type:varchar(20);not null;default:''"`
	Photo       string             `gorm:"type:text;not null;default:''"`
	Bio         string             `gorm:"type:text;not null;default:''"`
	SocialMedia []model.SocialLink `gorm:"serializer:json;type:text;not null"`
	Order       int                `gorm:"column:display_order;not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides the pluralized default.
func (TeamMemberModel) TableName() string { return "team_members" }

// FromDomain copies tm into the row.
func (m *TeamMemberModel) FromDomain(tm *model.TeamMember) {
	m.ID = tm.ID
	m.Name = tm.Name
	m.Role = tm.Role
	m.Department = tm.Department
	m.Year = tm.Year
	m.Photo = tm.Photo
	m.Bio = tm.Bio
	m.SocialMedia = tm.SocialMedia
	m.Order = tm.Order
	m.CreatedAt = tm.CreatedAt
	m.UpdatedAt = tm.UpdatedAt
}

// ToDomain converts the row into a domain team member.
func (m *TeamMemberModel) ToDomain() *model.TeamMember {
	tm := &model.TeamMember{
		ID:          m.ID,
		Name:        m.Name,
		Role:        m.Role,
		Department:  m.Department,
		Year:        m.Year,
		Photo:       m.Photo,
		Bio:         m.Bio,
		SocialMedia: m.SocialMedia,
		Order:       m.Order,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	tm.Normalize()
	return tm
}
