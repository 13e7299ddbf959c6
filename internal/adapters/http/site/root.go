// Package site serves the embedded public pages and the admin dashboard.
package site

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net/http"
)

// Error constants
var (
	ErrServe = errors.New("site serve failed")
)

//go:embed static
var staticFS embed.FS

// Pages maps mux patterns to the embedded page that renders them. Every
// page is static HTML that fetches its data from /api.
var Pages = map[string]string{
	"GET /{$}":             "index.html",
	"GET /events":          "events.html",
	"GET /events/upcoming": "upcoming.html",
	"GET /events/past":     "past.html",
	"GET /events/{slug}":   "event.html",
	"GET /gallery":         "gallery.html",
	"GET /team":            "team.html",
	"GET /admin":           "admin.html",
}

// FS returns the embedded static tree rooted at static/.
func FS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return staticFS
	}
	return sub
}

// Register attaches the site pages and /assets/ to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	assets, err := fs.Sub(FS(), "assets")
	if err != nil {
		panic(err)
	}
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(assets)))

	for pattern, page := range Pages {
		mux.Handle(pattern, NewPageHandler(page))
	}
}

// PageHandler serves one embedded HTML page.
type PageHandler struct {
	name string
}

// NewPageHandler creates a handler for the page at static/<name>.
func NewPageHandler(name string) *PageHandler {
	return &PageHandler{name: name}
}

func (h *PageHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	body, err := fs.ReadFile(FS(), h.name)
	if err != nil {
		http.Error(w, ErrServe.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(body)
}
