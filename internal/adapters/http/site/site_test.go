package site

import (
	"context"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSiteHandler(t *testing.T) {
	Convey("Given a site handler", t, func() {
		ctx := context.Background()
		mux := http.NewServeMux()

		Convey("When registering the site handler", func() {
			Register(ctx, mux)

			Convey("Then every page route serves HTML", func() {
				for _, path := range []string{"/", "/events", "/events/upcoming", "/events/past", "/events/hackathon-2025", "/gallery", "/team", "/admin"} {
					req := httptest.NewRequest(http.MethodGet, path, nil)
					w := httptest.NewRecorder()
					mux.ServeHTTP(w, req)

					So(w.Code, ShouldEqual, http.StatusOK)
					So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
				}
			})

			Convey("And specific event routes win over the slug route", func() {
				req := httptest.NewRequest(http.MethodGet, "/events/upcoming", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				So(w.Body.String(), ShouldContainSubstring, `data-page="upcoming"`)
			})

			Convey("And shared assets are served", func() {
				req := httptest.NewRequest(http.MethodGet, "/assets/app.js", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.Len(), ShouldBeGreaterThan, 0)
			})

			Convey("And unknown paths are not found", func() {
				req := httptest.NewRequest(http.MethodGet, "/some-asset", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusNotFound)
			})

			Convey("And pages are not served for writes", func() {
				req := httptest.NewRequest(http.MethodPost, "/events", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			})
		})
	})
}

func TestEmbeddedPages(t *testing.T) {
	Convey("Given the embedded tree", t, func() {
		Convey("Then every mapped page exists", func() {
			for _, page := range Pages {
				_, err := fs.Stat(FS(), page)
				So(err, ShouldBeNil)
			}
		})

		Convey("And a missing page is a server error", func() {
			w := httptest.NewRecorder()
			NewPageHandler("missing.html").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
		})
	})
}

func TestSiteHandlerWithNilMux(t *testing.T) {
	Convey("Given a nil mux", t, func() {
		ctx := context.Background()

		Convey("When registering the site handler", func() {
			Convey("Then it should panic", func() {
				So(func() {
					Register(ctx, nil)
				}, ShouldPanic)
			})
		})
	})
}
