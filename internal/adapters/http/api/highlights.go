package api

import (
	"context"
	"net/http"

	"github.com/pranav-2399/nexus-website/internal/domain/model"
)

// HighlightDependencies defines the highlight operations handlers need.
type HighlightDependencies interface {
	ListHighlights(ctx context.Context, highlightType string, limit int) ([]*model.Highlight, error)
	GetHighlight(ctx context.Context, id string) (*model.Highlight, error)
	CreateHighlight(ctx context.Context, h *model.Highlight) (*model.Highlight, error)
	UpdateHighlight(ctx context.Context, id string, h *model.Highlight) (*model.Highlight, error)
	DeleteHighlight(ctx context.Context, id string) error
}

// HighlightsHandler handles highlight requests.
type HighlightsHandler struct {
	deps    HighlightDependencies
	maxBody int64
}

// NewHighlightsHandler creates a new highlights handler.
func NewHighlightsHandler(deps HighlightDependencies, maxBody int64) *HighlightsHandler {
	return &HighlightsHandler{deps: deps, maxBody: maxBody}
}

// HandleList handles GET /api/highlights?type=&limit=.
func (h *HighlightsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	items, err := h.deps.ListHighlights(r.Context(), r.URL.Query().Get("type"), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []*model.Highlight{}
	}
	writeData(w, http.StatusOK, items)
}

func (h *HighlightsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	item, err := h.deps.GetHighlight(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, item)
}

func (h *HighlightsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in model.Highlight
	if err := decodeJSON(w, r, h.maxBody, &in); err != nil {
		writeServiceError(w, err)
		return
	}
	item, err := h.deps.CreateHighlight(r.Context(), &in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusCreated, item)
}

func (h *HighlightsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in model.Highlight
	if err := decodeJSON(w, r, h.maxBody, &in); err != nil {
		writeServiceError(w, err)
		return
	}
	item, err := h.deps.UpdateHighlight(r.Context(), r.PathValue("id"), &in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, item)
}

func (h *HighlightsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.DeleteHighlight(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
