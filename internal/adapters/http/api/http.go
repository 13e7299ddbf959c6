// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/pranav-2399/nexus-website/internal/domain/model"
	"github.com/pranav-2399/nexus-website/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	EventDependencies
	TeamDependencies
	HighlightDependencies
	FeedbackDependencies
	UploadDependencies
	StatsProvider

	// Ready reports whether the backing database answers.
	Ready(ctx context.Context) error
}

// Server wires HTTP routes for the site API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	eventsHandler    *EventsHandler
	teamHandler      *TeamHandler
	highlightHandler *HighlightsHandler
	feedbackHandler  *FeedbackHandler
	uploadHandler    *UploadHandler

	auth      *AdminAuth
	media     http.Handler
	maxBody   int64
	maxUpload int64
	logger    logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		auth:      NewAdminAuth(nil),
		maxBody:   defaultMaxBodyBytes,
		maxUpload: defaultMaxUploadBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("api")
	}

	s.healthHandler = NewHealthHandler(deps)
	s.statsHandler = NewStatsHandler(deps)
	s.eventsHandler = NewEventsHandler(deps, s.maxBody)
	s.teamHandler = NewTeamHandler(deps, s.maxBody)
	s.highlightHandler = NewHighlightsHandler(deps, s.maxBody)
	s.feedbackHandler = NewFeedbackHandler(deps, s.maxBody)
	s.uploadHandler = NewUploadHandler(deps, s.maxUpload)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	admin := s.auth.AdminOnly

	// Ops
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /metrics", MetricsMiddleware(s.healthHandler.HandleHealth, "metrics"))
	mux.HandleFunc("GET /readyz", MetricsMiddleware(s.healthHandler.HandleReady, "readyz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	if s.media != nil {
		mux.Handle("GET /media/", s.media)
	}

	// Events
	ev := s.eventsHandler
	mux.HandleFunc("GET /api/events", MetricsMiddleware(ev.HandleList, "events_list"))
	mux.HandleFunc("GET /api/events/{id}", MetricsMiddleware(ev.HandleGet, "events_get"))
	mux.HandleFunc("GET /api/events/slug/{slug}", MetricsMiddleware(ev.HandleGetBySlug, "events_get_slug"))
	mux.HandleFunc("GET /api/gallery", MetricsMiddleware(ev.HandleGallery, "gallery"))
	mux.HandleFunc("POST /api/events", MetricsMiddleware(admin(ev.HandleCreate), "events_create"))
	mux.HandleFunc("PUT /api/events/{id}", MetricsMiddleware(admin(ev.HandleUpdate), "events_update"))
	mux.HandleFunc("PATCH /api/events/{id}", MetricsMiddleware(admin(ev.HandlePatch), "events_patch"))
	mux.HandleFunc("DELETE /api/events/{id}", MetricsMiddleware(admin(ev.HandleDelete), "events_delete"))

	// Team
	tm := s.teamHandler
	mux.HandleFunc("GET /api/teams", MetricsMiddleware(tm.HandleList, "teams_list"))
	mux.HandleFunc("GET /api/teams/departments", MetricsMiddleware(tm.HandleDepartments, "teams_departments"))
	mux.HandleFunc("GET /api/teams/board", MetricsMiddleware(tm.HandleBoard, "teams_board"))
	mux.HandleFunc("GET /api/teams/{id}", MetricsMiddleware(admin(tm.HandleGet), "teams_get"))
	mux.HandleFunc("POST /api/teams", MetricsMiddleware(admin(tm.HandleCreate), "teams_create"))
	mux.HandleFunc("PUT /api/teams/{id}", MetricsMiddleware(admin(tm.HandleUpdate), "teams_update"))
	mux.HandleFunc("DELETE /api/teams/{id}", MetricsMiddleware(admin(tm.HandleDelete), "teams_delete"))

	// Highlights
	hl := s.highlightHandler
	mux.HandleFunc("GET /api/highlights", MetricsMiddleware(hl.HandleList, "highlights_list"))
	mux.HandleFunc("GET /api/highlights/{id}", MetricsMiddleware(admin(hl.HandleGet), "highlights_get"))
	mux.HandleFunc("POST /api/highlights", MetricsMiddleware(admin(hl.HandleCreate), "highlights_create"))
	mux.HandleFunc("PUT /api/highlights/{id}", MetricsMiddleware(admin(hl.HandleUpdate), "highlights_update"))
	mux.HandleFunc("DELETE /api/highlights/{id}", MetricsMiddleware(admin(hl.HandleDelete), "highlights_delete"))

	// Feedback
	fb := s.feedbackHandler
	mux.HandleFunc("POST /api/feedback", MetricsMiddleware(fb.HandleSubmit, "feedback_submit"))
	mux.HandleFunc("GET /api/feedback", MetricsMiddleware(admin(fb.HandleList), "feedback_list"))
	mux.HandleFunc("PATCH /api/feedback/{id}", MetricsMiddleware(admin(fb.HandleMark), "feedback_mark"))
	mux.HandleFunc("DELETE /api/feedback/{id}", MetricsMiddleware(admin(fb.HandleDelete), "feedback_delete"))

	// Uploads
	up := s.uploadHandler
	mux.HandleFunc("POST /api/uploads/image", MetricsMiddleware(admin(up.HandleImage), "uploads_image"))
	mux.HandleFunc("POST /api/uploads/gallery", MetricsMiddleware(admin(up.HandleGallery), "uploads_gallery"))
	mux.HandleFunc("DELETE /api/uploads", MetricsMiddleware(admin(up.HandleDelete), "uploads_delete"))

	mux.HandleFunc("GET /api/admin/session", MetricsMiddleware(admin(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}), "admin_session"))

	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", fmt.Errorf("no route for %s %s", r.Method, r.URL.Path))
	})
}

type dataResponse struct {
	Data any `json:"data"`
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, dataResponse{Data: v})
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError maps domain sentinels to status codes. Anything
// unrecognised is a 500 carrying the underlying message.
func writeServiceError(w http.ResponseWriter, err error) {
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, model.ErrInvalid), errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, model.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized", err)
	case errors.Is(err, ErrAdminDisabled):
		writeError(w, http.StatusForbidden, "admin_disabled", err)
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, model.ErrConflict):
		writeError(w, http.StatusConflict, "conflict", err)
	case errors.Is(err, model.ErrTooLarge), errors.As(err, &maxErr):
		writeError(w, http.StatusRequestEntityTooLarge, "too_large", err)
	case errors.Is(err, model.ErrUnsupportedMedia):
		writeError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// decodeJSON reads a single JSON value of at most limit bytes into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return fmt.Errorf("%w: body exceeds %d bytes", model.ErrTooLarge, maxErr.Limit)
		case errors.Is(err, io.EOF):
			return fmt.Errorf("%w: empty body", ErrBadRequest)
		default:
			return fmt.Errorf("%w: %v", ErrBadRequest, err)
		}
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data after JSON body", ErrBadRequest)
	}
	return nil
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", ErrBadRequest, name)
	}
	return n, nil
}

// queryBool parses an optional boolean query parameter; nil means unset.
func queryBool(r *http.Request, name string) (*bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be true or false", ErrBadRequest, name)
	}
	return &b, nil
}
