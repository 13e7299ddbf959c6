package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/pranav-2399/nexus-website/internal/adapters/notify"
	"github.com/pranav-2399/nexus-website/internal/adapters/storage"
	"github.com/pranav-2399/nexus-website/internal/config"
	"github.com/pranav-2399/nexus-website/pkg/logger"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.New()
	cfg.AdminTokens = []string{"admin-token"}
	cfg.Database.DSN = "file:" + filepath.Join(dir, "nexus.db") + "?_foreign_keys=on"
	cfg.Database.MaxOpenConns = 1
	cfg.Database.MaxIdleConns = 1
	cfg.Storage.LocalDir = filepath.Join(dir, "uploads")
	cfg.StatusRefreshInterval = 0
	return cfg
}

func TestWiring(t *testing.T) {
	if err := logger.Init(); err != nil {
		t.Fatal(err)
	}

	convey.Convey("Given the default configuration", t, func() {
		cfg := testConfig(t)

		convey.Convey("When building the object store", func() {
			convey.Convey("Then the local backend also serves /media/", func() {
				store, media, err := newObjectStore(cfg)
				convey.So(err, convey.ShouldBeNil)
				convey.So(store, convey.ShouldHaveSameTypeAs, &storage.LocalStore{})
				convey.So(media, convey.ShouldNotBeNil)
			})

			convey.Convey("And the supabase backend has no media handler", func() {
				cfg.Storage.Backend = "supabase"
				cfg.Storage.SupabaseURL = "https://project.supabase.co"
				cfg.Storage.SupabaseKey = "service-key"
				store, media, err := newObjectStore(cfg)
				convey.So(err, convey.ShouldBeNil)
				convey.So(store, convey.ShouldHaveSameTypeAs, &storage.SupabaseStore{})
				convey.So(media, convey.ShouldBeNil)
			})

			convey.Convey("And an unknown backend is an error", func() {
				cfg.Storage.Backend = "s3"
				_, _, err := newObjectStore(cfg)
				convey.So(errors.Is(err, storage.ErrMissingBackend), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When building the notifier", func() {
			convey.Convey("Then no webhook means no notifications", func() {
				n, err := newNotifier(cfg)
				convey.So(err, convey.ShouldBeNil)
				convey.So(n, convey.ShouldHaveSameTypeAs, notify.Noop{})
			})

			convey.Convey("And a bad webhook URL is rejected", func() {
				cfg.Notify.DiscordWebhookURL = "http://example.com/hooks"
				_, err := newNotifier(cfg)
				convey.So(errors.Is(err, notify.ErrInvalidWebhook), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the full handler is assembled", func() {
			ctx := context.Background()
			db, err := openDatabase(ctx, cfg)
			convey.So(err, convey.ShouldBeNil)

			objects, media, err := newObjectStore(cfg)
			convey.So(err, convey.ShouldBeNil)
			svc := newService(cfg, db, objects, notify.Noop{})
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()

			h := newHandler(ctx, cfg, svc, media)

			get := func(path string) *httptest.ResponseRecorder {
				req := httptest.NewRequest(http.MethodGet, path, nil)
				rec := httptest.NewRecorder()
				h.ServeHTTP(rec, req)
				return rec
			}

			convey.Convey("Then the API answers from the database", func() {
				rec := get("/api/events")
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(rec.Body.String(), convey.ShouldContainSubstring, `"data":[]`)
			})

			convey.Convey("And readiness pings the database", func() {
				convey.So(get("/readyz").Code, convey.ShouldEqual, http.StatusOK)
			})

			convey.Convey("And the site and docs are mounted", func() {
				convey.So(get("/").Code, convey.ShouldEqual, http.StatusOK)
				convey.So(get("/api-docs").Code, convey.ShouldEqual, http.StatusOK)
			})

			convey.Convey("And responses are gzipped when asked for", func() {
				req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil)
				req.Header.Set("Accept-Encoding", "gzip")
				rec := httptest.NewRecorder()
				h.ServeHTTP(rec, req)
				convey.So(rec.Header().Get("Content-Encoding"), convey.ShouldEqual, "gzip")
			})

			convey.Convey("And CORS preflight is answered", func() {
				req := httptest.NewRequest(http.MethodOptions, "/api/events", nil)
				req.Header.Set("Origin", "https://club.example")
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
				req.Header.Set("Access-Control-Request-Headers", "authorization")
				rec := httptest.NewRecorder()
				h.ServeHTTP(rec, req)
				convey.So(rec.Code, convey.ShouldEqual, http.StatusNoContent)
				convey.So(strings.EqualFold(rec.Header().Get("Access-Control-Allow-Headers"), "Authorization"), convey.ShouldBeTrue)
			})

			convey.Convey("And the stats feed the metrics updater", func() {
				updateServiceMetrics(svc)
				updateSystemMetrics()
				convey.So(svc.GetStats()["started"], convey.ShouldBeTrue)
			})
		})
	})
}
