package api

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/pranav-2399/nexus-website/internal/domain/model"
)

const multipartMemory = 8 << 20

// UploadDependencies defines the image operations handlers need.
type UploadDependencies interface {
	UploadImage(ctx context.Context, kind model.ImageKind, fh *multipart.FileHeader) (*model.Asset, error)
	UploadGallery(ctx context.Context, files []*multipart.FileHeader) ([]*model.Asset, error)
	DeleteImage(ctx context.Context, nameOrURL string) error
}

// UploadHandler handles image uploads.
type UploadHandler struct {
	deps     UploadDependencies
	maxBytes int64
}

// NewUploadHandler creates a new upload handler; maxBytes caps the request.
func NewUploadHandler(deps UploadDependencies, maxBytes int64) *UploadHandler {
	return &UploadHandler{deps: deps, maxBytes: maxBytes}
}

type uploadResponse struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

type galleryResponse struct {
	URLs []string `json:"urls"`
}

func (h *UploadHandler) parse(w http.ResponseWriter, r *http.Request) (*multipart.Form, error) {
	if r.ContentLength > h.maxBytes {
		return nil, fmt.Errorf("%w: upload exceeds %d bytes", model.ErrTooLarge, h.maxBytes)
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("%w: upload exceeds %d bytes", model.ErrTooLarge, maxErr.Limit)
		}
		return nil, fmt.Errorf("%w: multipart form: %v", ErrBadRequest, err)
	}
	return r.MultipartForm, nil
}

// HandleImage handles POST /api/uploads/image with a "file" part and a
// "type" field naming the image kind.
func (h *UploadHandler) HandleImage(w http.ResponseWriter, r *http.Request) {
	form, err := h.parse(w, r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	defer form.RemoveAll()

	kind, err := model.ParseImageKind(firstValue(form, "type"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	files := form.File["file"]
	if len(files) != 1 {
		writeServiceError(w, fmt.Errorf("%w: exactly one file is required", ErrBadRequest))
		return
	}
	asset, err := h.deps.UploadImage(r.Context(), kind, files[0])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, uploadResponse{URL: asset.URL, Name: asset.Name})
}

// HandleGallery handles POST /api/uploads/gallery with one or more "file" parts.
func (h *UploadHandler) HandleGallery(w http.ResponseWriter, r *http.Request) {
	form, err := h.parse(w, r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	defer form.RemoveAll()

	assets, err := h.deps.UploadGallery(r.Context(), form.File["file"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	urls := make([]string, len(assets))
	for i, a := range assets {
		urls[i] = a.URL
	}
	writeJSON(w, http.StatusCreated, galleryResponse{URLs: urls})
}

// HandleDelete handles DELETE /api/uploads?file=<name or URL>. Removal is
// asynchronous.
func (h *UploadHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	file := strings.TrimSpace(r.URL.Query().Get("file"))
	if file == "" {
		writeServiceError(w, fmt.Errorf("%w: file is required", ErrBadRequest))
		return
	}
	if err := h.deps.DeleteImage(r.Context(), file); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted"})
}

func firstValue(form *multipart.Form, key string) string {
	if v := form.Value[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}
