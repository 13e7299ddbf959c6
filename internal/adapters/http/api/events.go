package api

import (
	"context"
	"net/http"

	service "github.com/pranav-2399/nexus-website/internal/app"
	"github.com/pranav-2399/nexus-website/internal/domain/model"
)

// EventDependencies defines the event operations handlers need.
type EventDependencies interface {
	ListEvents(ctx context.Context, f service.EventFilter) ([]*model.Event, error)
	ListGallery(ctx context.Context) ([]*model.Event, error)
	GetEvent(ctx context.Context, id string) (*model.Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*model.Event, error)
	CreateEvent(ctx context.Context, e *model.Event) (*model.Event, error)
	UpdateEvent(ctx context.Context, id string, e *model.Event) (*model.Event, error)
	PatchEvent(ctx context.Context, id string, p model.EventPatch) (*model.Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

// EventsHandler handles event requests.
type EventsHandler struct {
	deps    EventDependencies
	maxBody int64
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps EventDependencies, maxBody int64) *EventsHandler {
	return &EventsHandler{deps: deps, maxBody: maxBody}
}

// HandleList handles GET /api/events?status=&isPinned=&limit=&offset=.
func (h *EventsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	pinned, err := queryBool(r, "isPinned")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	events, err := h.deps.ListEvents(r.Context(), service.EventFilter{
		Status: r.URL.Query().Get("status"),
		Pinned: pinned,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, events)
}

// HandleGallery handles GET /api/gallery.
func (h *EventsHandler) HandleGallery(w http.ResponseWriter, r *http.Request) {
	events, err := h.deps.ListGallery(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, events)
}

// HandleGet handles GET /api/events/{id}.
func (h *EventsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	e, err := h.deps.GetEvent(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, e)
}

// HandleGetBySlug handles GET /api/events/slug/{slug}.
func (h *EventsHandler) HandleGetBySlug(w http.ResponseWriter, r *http.Request) {
	e, err := h.deps.GetEventBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, e)
}

// HandleCreate handles POST /api/events.
func (h *EventsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in model.Event
	if err := decodeJSON(w, r, h.maxBody, &in); err != nil {
		writeServiceError(w, err)
		return
	}
	e, err := h.deps.CreateEvent(r.Context(), &in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Location", "/api/events/"+e.ID)
	writeData(w, http.StatusCreated, e)
}

// HandleUpdate handles PUT /api/events/{id}; the body replaces the event.
func (h *EventsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in model.Event
	if err := decodeJSON(w, r, h.maxBody, &in); err != nil {
		writeServiceError(w, err)
		return
	}
	e, err := h.deps.UpdateEvent(r.Context(), r.PathValue("id"), &in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, e)
}

// HandlePatch handles PATCH /api/events/{id}; only present fields change.
func (h *EventsHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	var p model.EventPatch
	if err := decodeJSON(w, r, h.maxBody, &p); err != nil {
		writeServiceError(w, err)
		return
	}
	e, err := h.deps.PatchEvent(r.Context(), r.PathValue("id"), p)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, e)
}

// HandleDelete handles DELETE /api/events/{id}.
func (h *EventsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.DeleteEvent(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
