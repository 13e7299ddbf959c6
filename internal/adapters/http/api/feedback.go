package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/pranav-2399/nexus-website/internal/domain/model"
	"github.com/pranav-2399/nexus-website/internal/domain/types"
)

// IdempotencyHeader lets a client retry a feedback submission safely.
const IdempotencyHeader = "Idempotency-Key"

const maxIdempotencyKeyLen = 200

// FeedbackDependencies defines the feedback operations handlers need.
type FeedbackDependencies interface {
	SubmitFeedback(ctx context.Context, key string, f *model.Feedback) (*model.Feedback, bool, error)
	ListFeedback(ctx context.Context, unreadOnly bool, limit, offset int) (types.List[*model.Feedback], error)
	MarkFeedbackRead(ctx context.Context, id string, read bool) (*model.Feedback, error)
	DeleteFeedback(ctx context.Context, id string) error
}

// FeedbackHandler handles feedback requests.
type FeedbackHandler struct {
	deps    FeedbackDependencies
	maxBody int64
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(deps FeedbackDependencies, maxBody int64) *FeedbackHandler {
	return &FeedbackHandler{deps: deps, maxBody: maxBody}
}

// HandleSubmit handles POST /api/feedback. A repeat of an earlier submission
// answers 200 with a duplicate ack instead of storing it again.
func (h *FeedbackHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(r.Header.Get(IdempotencyHeader))
	if len(key) > maxIdempotencyKeyLen {
		writeServiceError(w, fmt.Errorf("%w: %s longer than %d characters", ErrBadRequest, IdempotencyHeader, maxIdempotencyKeyLen))
		return
	}
	var in model.Feedback
	if err := decodeJSON(w, r, h.maxBody, &in); err != nil {
		writeServiceError(w, err)
		return
	}
	fb, duplicate, err := h.deps.SubmitFeedback(r.Context(), key, &in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if duplicate {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true})
		return
	}
	writeData(w, http.StatusCreated, fb)
}

// HandleList handles GET /api/feedback?unread=true&limit=&offset=.
func (h *FeedbackHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	unread, err := queryBool(r, "unread")
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
	list, err := h.deps.ListFeedback(r.Context(), unread != nil && *unread, limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, list)
}

type markRequest struct {
	Read *bool `json:"read"`
}

// HandleMark handles PATCH /api/feedback/{id} with {"read": bool}.
func (h *FeedbackHandler) HandleMark(w http.ResponseWriter, r *http.Request) {
	var in markRequest
	if err := decodeJSON(w, r, h.maxBody, &in); err != nil {
		writeServiceError(w, err)
		return
	}
	if in.Read == nil {
		writeServiceError(w, fmt.Errorf("%w: read is required", ErrBadRequest))
		return
	}
	fb, err := h.deps.MarkFeedbackRead(r.Context(), r.PathValue("id"), *in.Read)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, fb)
}

// HandleDelete handles DELETE /api/feedback/{id}.
func (h *FeedbackHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.DeleteFeedback(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
