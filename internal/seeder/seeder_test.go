package seeder_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/pranav-2399/nexus-website/internal/adapters/http/api"
	"github.com/pranav-2399/nexus-website/internal/adapters/repository"
	service "github.com/pranav-2399/nexus-website/internal/app"
	"github.com/pranav-2399/nexus-website/internal/seeder"
	"github.com/pranav-2399/nexus-website/pkg/logger"
)

const token = "seed-token"

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// newSite serves the real API over an in-memory database.
func newSite(t *testing.T) *httptest.Server {
	t.Helper()
	settings := repository.Settings{
		Driver:       repository.DriverSQLite,
		DSN:          "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
	}
	db, err := repository.NewDBConnection(settings)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = repository.CloseDB(db) })
	if err := repository.Migrate(context.Background(), db, settings); err != nil {
		t.Fatal(err)
	}

	svc := service.New(service.Repositories{
		Events:     repository.NewEventStore(db),
		Team:       repository.NewTeamStore(db),
		Highlights: repository.NewHighlightStore(db),
		Feedback:   repository.NewFeedbackStore(db),
	},
		service.WithStatusRefreshInterval(0),
		service.WithReadiness(func(ctx context.Context) error { return repository.Ping(ctx, db) }),
	)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(svc.Stop)

	mux := http.NewServeMux()
	api.NewServer(svc, api.WithAdminTokens([]string{token}), api.WithLogger(logger.New(io.Discard))).Register(context.Background(), mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGenerator(t *testing.T) {
	Convey("Given a generator", t, func() {
		g, err := seeder.NewGenerator(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
		So(err, ShouldBeNil)

		Convey("Then generated content passes model validation", func() {
			for i := 0; i < 20; i++ {
				e := g.Event(i)
				e.Normalize()
				So(e.Validate(), ShouldBeNil)

				m := g.TeamMember(i)
				m.Normalize()
				So(m.Validate(), ShouldBeNil)

				h := g.Highlight(i)
				h.Normalize()
				So(h.Validate(), ShouldBeNil)
			}
		})

		Convey("And titles differ between items", func() {
			So(g.Event(1).Title, ShouldNotEqual, g.Event(2).Title)
		})

		Convey("And items are built in the requested mix", func() {
			items := g.Items(&seeder.Config{Events: 2, Team: 1, Highlights: 1, Feedback: 3})
			So(items, ShouldHaveLength, 7)
			So(items[0].Kind, ShouldEqual, seeder.KindEvent)
			So(items[0].Admin, ShouldBeTrue)
			last := items[len(items)-1]
			So(last.Kind, ShouldEqual, seeder.KindFeedback)
			So(last.Admin, ShouldBeFalse)
			So(last.Key, ShouldNotBeEmpty)
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a running site", t, func() {
		srv := newSite(t)
		cfg := &seeder.Config{
			BaseURL:    srv.URL,
			AdminToken: token,
			Events:     5,
			Team:       4,
			Highlights: 3,
			Feedback:   6,
			Workers:    3,
			Timeout:    5 * time.Second,
			OutputFile: filepath.Join(t.TempDir(), "out", "seed.json"),
		}

		Convey("When seeding", func() {
			stats, err := seeder.Run(context.Background(), cfg)

			Convey("Then every item lands and is counted back", func() {
				So(err, ShouldBeNil)
				So(stats.Generated, ShouldEqual, 18)
				So(stats.Failed, ShouldEqual, 0)
				So(stats.Successful, ShouldEqual, 18)
				So(stats.Verified[seeder.KindEvent], ShouldEqual, 5)
				So(stats.Verified[seeder.KindTeam], ShouldEqual, 4)
				So(stats.Verified[seeder.KindHighlight], ShouldEqual, 3)
				So(stats.Verified[seeder.KindFeedback], ShouldEqual, 6)
			})

			Convey("And a second run adds on top", func() {
				stats, err := seeder.Run(context.Background(), cfg)
				So(err, ShouldBeNil)
				So(stats.Verified[seeder.KindEvent], ShouldEqual, 5)
			})
		})

		Convey("When no admin token is given for admin content", func() {
			cfg.AdminToken = ""
			_, err := seeder.Run(context.Background(), cfg)
			So(errors.Is(err, seeder.ErrNeedsToken), ShouldBeTrue)
		})

		Convey("When nothing is requested", func() {
			_, err := seeder.Run(context.Background(), &seeder.Config{BaseURL: srv.URL})
			So(errors.Is(err, seeder.ErrNoWork), ShouldBeTrue)
		})
	})

	Convey("Given a site that is not ready", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := seeder.Run(context.Background(), &seeder.Config{BaseURL: srv.URL, Feedback: 1, Timeout: time.Second})
		So(errors.Is(err, seeder.ErrUnhealthy), ShouldBeTrue)
	})
}
