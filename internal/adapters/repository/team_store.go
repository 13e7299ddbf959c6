package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/pranav-2399/nexus-website/internal/adapters/repository/models"
	"github.com/pranav-2399/nexus-website/internal/domain/model"
)

const entityTeam = "team_member"

type gormTeamStore struct {
	db *gorm.DB
}

// NewTeamStore returns a TeamStore backed by db.
func NewTeamStore(db *gorm.DB) TeamStore {
	return &gormTeamStore{db: db}
}

func (s *gormTeamStore) Create(ctx context.Context, m *model.TeamMember) error {
	defer observe(entityTeam, time.Now())
	row := &models.TeamMemberModel{}
	row.FromDomain(m)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return translate(entityTeam, err)
	}
	m.CreatedAt, m.UpdatedAt = row.CreatedAt, row.UpdatedAt
	return nil
}

func (s *gormTeamStore) Get(ctx context.Context, id string) (*model.TeamMember, error) {
	defer observe(entityTeam, time.Now())
	var row models.TeamMemberModel
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, translate(entityTeam, err)
	}
	return row.ToDomain(), nil
}

func (s *gormTeamStore) List(ctx context.Context, department string) ([]*model.TeamMember, error) {
	defer observe(entityTeam, time.Now())
	tx := s.db.WithContext(ctx).Model(&models.TeamMemberModel{})
	if department != "" {
		tx = tx.Where("LOWER(department) = LOWER(?)", department)
	}
	var rows []models.TeamMemberModel
	if err := tx.Order("display_order ASC").Order("name ASC").Find(&rows).Error; err != nil {
		return nil, translate(entityTeam, err)
	}
	out := make([]*model.TeamMember, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

func (s *gormTeamStore) Update(ctx context.Context, m *model.TeamMember) error {
	defer observe(entityTeam, time.Now())
	row := &models.TeamMemberModel{}
	row.FromDomain(m)
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = time.Now().UTC()
	}
	res := s.db.WithContext(ctx).
		Model(&models.TeamMemberModel{}).
		Where("id = ?", m.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(row)
	if res.Error != nil {
		return translate(entityTeam, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound(entityTeam)
	}
	m.UpdatedAt = row.UpdatedAt
	return nil
}

func (s *gormTeamStore) Delete(ctx context.Context, id string) error {
	defer observe(entityTeam, time.Now())
	res := s.db.WithContext(ctx).Delete(&models.TeamMemberModel{}, "id = ?", id)
	if res.Error != nil {
		return translate(entityTeam, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound(entityTeam)
	}
	return nil
}
