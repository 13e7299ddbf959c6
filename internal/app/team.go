package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pranav-2399/nexus-website/internal/domain/model"
	"github.com/pranav-2399/nexus-website/pkg/metrics"
)

// ListTeam returns members in display order, optionally for one department.
func (s *Service) ListTeam(ctx context.Context, department string) ([]model.TeamMember, error) {
	rows, err := s.repos.Team.List(ctx, department)
	if err != nil {
		return nil, err
	}
	out := make([]model.TeamMember, len(rows))
	for i, m := range rows {
		out[i] = *m
	}
	return out, nil
}

// TeamDepartments groups the whole team by department.
func (s *Service) TeamDepartments(ctx context.Context) ([]model.Department, error) {
	members, err := s.ListTeam(ctx, "")
	if err != nil {
		return nil, err
	}
	departments := model.GroupByDepartment(members)
	if departments == nil {
		departments = []model.Department{}
	}
	return departments, nil
}

// TeamBoard returns the president and the board.
func (s *Service) TeamBoard(ctx context.Context) (model.Board, error) {
	members, err := s.ListTeam(ctx, "")
	if err != nil {
		return model.Board{}, err
	}
	return model.BoardOf(members), nil
}

// GetTeamMember fetches one member.
func (s *Service) GetTeamMember(ctx context.Context, id string) (*model.TeamMember, error) {
	return s.repos.Team.Get(ctx, id)
}

// CreateTeamMember adds a member.
func (s *Service) CreateTeamMember(ctx context.Context, m *model.TeamMember) (*model.TeamMember, error) {
	m.Normalize()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	now := s.now()
	m.ID = uuid.NewString()
	m.CreatedAt = now
	m.UpdatedAt = now
	if err := s.repos.Team.Create(ctx, m); err != nil {
		return nil, err
	}
	metrics.RecordContentOperation("team", "create")
	return m, nil
}

// UpdateTeamMember replaces member id with m.
func (s *Service) UpdateTeamMember(ctx context.Context, id string, m *model.TeamMember) (*model.TeamMember, error) {
	existing, err := s.repos.Team.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Normalize()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	m.ID = existing.ID
	m.CreatedAt = existing.CreatedAt
	m.UpdatedAt = s.now()
	if err := s.repos.Team.Update(ctx, m); err != nil {
		return nil, err
	}
	metrics.RecordContentOperation("team", "update")
	s.deleteObjects(ctx, removed([]string{existing.Photo}, []string{m.Photo}))
	return m, nil
}

// DeleteTeamMember removes a member and their photo.
func (s *Service) DeleteTeamMember(ctx context.Context, id string) error {
	existing, err := s.repos.Team.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repos.Team.Delete(ctx, id); err != nil {
		return err
	}
	metrics.RecordContentOperation("team", "delete")
	s.deleteObjects(ctx, []string{existing.Photo})
	return nil
}
