package api

import (
	"context"
	"net/http"

	"github.com/pranav-2399/nexus-website/internal/domain/model"
)

// TeamDependencies defines the team operations handlers need.
type TeamDependencies interface {
	ListTeam(ctx context.Context, department string) ([]model.TeamMember, error)
	TeamDepartments(ctx context.Context) ([]model.Department, error)
	TeamBoard(ctx context.Context) (model.Board, error)
	GetTeamMember(ctx context.Context, id string) (*model.TeamMember, error)
	CreateTeamMember(ctx context.Context, m *model.TeamMember) (*model.TeamMember, error)
	UpdateTeamMember(ctx context.Context, id string, m *model.TeamMember) (*model.TeamMember, error)
	DeleteTeamMember(ctx context.Context, id string) error
}

// TeamHandler handles team requests. Lists answer {"teams": [...]}, the
// shape the team page reads.
type TeamHandler struct {
	deps    TeamDependencies
	maxBody int64
}

type teamResponse struct {
	Teams []model.TeamMember `json:"teams"`
}

// NewTeamHandler creates a new team handler.
func NewTeamHandler(deps TeamDependencies, maxBody int64) *TeamHandler {
	return &TeamHandler{deps: deps, maxBody: maxBody}
}

// HandleList handles GET /api/teams?department=.
func (h *TeamHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	members, err := h.deps.ListTeam(r.Context(), r.URL.Query().Get("department"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if members == nil {
		members = []model.TeamMember{}
	}
	writeJSON(w, http.StatusOK, teamResponse{Teams: members})
}

// HandleDepartments handles GET /api/teams/departments.
func (h *TeamHandler) HandleDepartments(w http.ResponseWriter, r *http.Request) {
	deps, err := h.deps.TeamDepartments(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, deps)
}

// HandleBoard handles GET /api/teams/board.
func (h *TeamHandler) HandleBoard(w http.ResponseWriter, r *http.Request) {
	b, err := h.deps.TeamBoard(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, b)
}

func (h *TeamHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	m, err := h.deps.GetTeamMember(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, m)
}

func (h *TeamHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in model.TeamMember
	if err := decodeJSON(w, r, h.maxBody, &in); err != nil {
		writeServiceError(w, err)
		return
	}
	m, err := h.deps.CreateTeamMember(r.Context(), &in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusCreated, m)
}

func (h *TeamHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in model.TeamMember
	if err := decodeJSON(w, r, h.maxBody, &in); err != nil {
		writeServiceError(w, err)
		return
	}
	m, err := h.deps.UpdateTeamMember(r.Context(), r.PathValue("id"), &in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, m)
}

func (h *TeamHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.DeleteTeamMember(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
