package service_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/pranav-2399/nexus-website/internal/adapters/repository"
	"github.com/pranav-2399/nexus-website/internal/adapters/storage"
	service "github.com/pranav-2399/nexus-website/internal/app"
	"github.com/pranav-2399/nexus-website/internal/domain/model"
	"github.com/pranav-2399/nexus-website/internal/domain/types"
	"github.com/pranav-2399/nexus-website/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

// clock is a settable time source.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// recorder captures notifications.
type recorder struct {
	mu   sync.Mutex
	sent []model.Notification
}

func (r *recorder) Notify(_ context.Context, n *model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, *n)
	return nil
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

func (r *recorder) last() model.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sent[len(r.sent)-1]
}

type fixture struct {
	svc      *service.Service
	clock    *clock
	notes    *recorder
	mediaDir string
}

func newFixture(t *testing.T) *fixture {
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

	dir := t.TempDir()
	objects, err := storage.NewLocalStore(dir, "http://club.test")
	if err != nil {
		t.Fatal(err)
	}

	c := &clock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	notes := &recorder{}
	svc := service.New(service.Repositories{
		Events:     repository.NewEventStore(db),
		Team:       repository.NewTeamStore(db),
		Highlights: repository.NewHighlightStore(db),
		Feedback:   repository.NewFeedbackStore(db),
	},
		service.WithNow(c.Now),
		service.WithObjectStore(objects),
		service.WithNotifier(notes),
		service.WithWorkerCount(2),
		service.WithQueueSize(64),
		service.WithMaxUploadBytes(1024),
		service.WithStatusRefreshInterval(0),
		service.WithPublicBaseURL("http://club.test"),
		service.WithReadiness(func(ctx context.Context) error { return repository.Ping(ctx, db) }),
	)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(svc.Stop)
	return &fixture{svc: svc, clock: c, notes: notes, mediaDir: dir}
}

func fileHeader(t *testing.T, name string, data []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", name)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = fw.Write(data)
	_ = w.Close()
	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatal(err)
	}
	return form.File["file"][0]
}

func eventually(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

// shouldWrap asserts errors.Is(actual, expected[0]).
func shouldWrap(actual any, expected ...any) string {
	err, _ := actual.(error)
	target, _ := expected[0].(error)
	if errors.Is(err, target) {
		return ""
	}
	return fmt.Sprintf("expected error %v to wrap %v", actual, target)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a started service", t, func() {
		f := newFixture(t)

		Convey("Then stats report it running", func() {
			stats := f.svc.GetStats()
			So(stats["started"], ShouldEqual, true)
			So(stats["workerCount"], ShouldEqual, 2)
			So(stats["queueLength"], ShouldEqual, 0)
			So(f.svc.Ready(context.Background()), ShouldBeNil)
		})

		Convey("When stopping it twice", func() {
			f.svc.Stop()
			f.svc.Stop()

			Convey("Then it is marked stopped", func() {
				So(f.svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})
}

// slowStore takes a while to delete and counts what it removed.
type slowStore struct {
	delay   time.Duration
	deleted atomic.Int64
}

func (s *slowStore) Put(context.Context, string, string, io.Reader, int64) (string, error) {
	return "", errors.New("read-only")
}

func (s *slowStore) Delete(context.Context, string) error {
	time.Sleep(s.delay)
	s.deleted.Add(1)
	return nil
}

func (s *slowStore) NameFromURL(string) (string, bool) { return "", false }

func TestService_StopDrainsJobs(t *testing.T) {
	Convey("Given a service started on a context that gets cancelled", t, func() {
		settings := repository.Settings{
			Driver:       repository.DriverSQLite,
			DSN:          "file:" + uuid.NewString() + "?mode=memory&cache=shared",
			MaxOpenConns: 1,
		}
		db, err := repository.NewDBConnection(settings)
		So(err, ShouldBeNil)
		defer func() { _ = repository.CloseDB(db) }()

		objects := &slowStore{delay: 20 * time.Millisecond}
		svc := service.New(service.Repositories{Events: repository.NewEventStore(db)},
			service.WithObjectStore(objects),
			service.WithWorkerCount(2),
			service.WithQueueSize(64),
			service.WithStatusRefreshInterval(0),
		)
		ctx, cancel := context.WithCancel(context.Background())
		So(svc.Start(ctx), ShouldBeNil)

		const n = 20
		for i := 0; i < n; i++ {
			So(svc.DeleteImage(context.Background(), fmt.Sprintf("gallery/%d.png", i)), ShouldBeNil)
		}

		Convey("When the context is cancelled before Stop", func() {
			cancel()
			svc.Stop()

			Convey("Then every accepted delete still ran", func() {
				So(objects.deleted.Load(), ShouldEqual, int64(n))
			})
		})
	})
}

func TestService_Events(t *testing.T) {
	Convey("Given a service", t, func() {
		f := newFixture(t)
		ctx := context.Background()

		Convey("CreateEvent derives status and slug and announces the event", func() {
			e, err := f.svc.CreateEvent(ctx, &model.Event{Title: "  Hack Night! ", Date: "2025-07-01", Time: "18:30", Description: "**Bring** laptops"})
			So(err, ShouldBeNil)
			So(e.ID, ShouldNotBeEmpty)
			So(e.Slug, ShouldEqual, "hack-night")
			So(e.Status, ShouldEqual, model.StatusUpcoming)
			So(e.Countdown, ShouldNotBeNil)
			So(e.Countdown.Days, ShouldEqual, 30)
			So(e.DescriptionHTML, ShouldContainSubstring, "<strong>Bring</strong>")
			So(e.Gallery, ShouldResemble, []string{})

			So(eventually(func() bool { return f.notes.count() == 1 }), ShouldBeTrue)
			So(f.notes.last().Topic, ShouldEqual, model.TopicEvent)
			So(f.notes.last().Link, ShouldEqual, "http://club.test/events/hack-night")

			Convey("a second event with the same title gets a suffixed slug", func() {
				e2, err := f.svc.CreateEvent(ctx, &model.Event{Title: "Hack Night", Date: "2025-01-10"})
				So(err, ShouldBeNil)
				So(e2.Slug, ShouldEqual, "hack-night-2")
				So(e2.Status, ShouldEqual, model.StatusPast)
				So(e2.Countdown, ShouldBeNil)

				upcoming, err := f.svc.ListEvents(ctx, service.EventFilter{Status: model.StatusUpcoming})
				So(err, ShouldBeNil)
				So(upcoming, ShouldHaveLength, 1)
				So(upcoming[0].ID, ShouldEqual, e.ID)

				bySlug, err := f.svc.GetEventBySlug(ctx, "hack-night-2")
				So(err, ShouldBeNil)
				So(bySlug.ID, ShouldEqual, e2.ID)
			})

			Convey("PatchEvent toggles the pin without touching other fields", func() {
				pinned := true
				got, err := f.svc.PatchEvent(ctx, e.ID, model.EventPatch{IsPinned: &pinned})
				So(err, ShouldBeNil)
				So(got.IsPinned, ShouldBeTrue)
				So(got.Title, ShouldEqual, "Hack Night!")
				So(got.Slug, ShouldEqual, "hack-night")
				So(got.CreatedAt.Equal(e.CreatedAt), ShouldBeTrue)

				list, err := f.svc.ListEvents(ctx, service.EventFilter{Pinned: &pinned})
				So(err, ShouldBeNil)
				So(list, ShouldHaveLength, 1)

				_, err = f.svc.PatchEvent(ctx, e.ID, model.EventPatch{})
				So(err, shouldWrap, model.ErrInvalid)
			})

			Convey("UpdateEvent replaces fields and re-slugs on a new title", func() {
				got, err := f.svc.UpdateEvent(ctx, e.ID, &model.Event{Title: "Code Sprint", Date: "2025-05-01"})
				So(err, ShouldBeNil)
				So(got.Slug, ShouldEqual, "code-sprint")
				So(got.Status, ShouldEqual, model.StatusPast)
				So(got.Description, ShouldBeEmpty)
			})

			Convey("UpdateEvent stamps the service clock", func() {
				later := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)
				f.clock.Set(later)
				got, err := f.svc.UpdateEvent(ctx, e.ID, &model.Event{Title: "Hack Night!", Date: "2025-07-01"})
				So(err, ShouldBeNil)
				So(got.UpdatedAt.Equal(later), ShouldBeTrue)

				stored, err := f.svc.GetEvent(ctx, e.ID)
				So(err, ShouldBeNil)
				So(stored.UpdatedAt.Equal(later), ShouldBeTrue)
			})

			Convey("the clock passing the start flips the status", func() {
				f.clock.Set(time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC))

				got, err := f.svc.GetEvent(ctx, e.ID)
				So(err, ShouldBeNil)
				So(got.Status, ShouldEqual, model.StatusPast)

				upcoming, err := f.svc.ListEvents(ctx, service.EventFilter{Status: model.StatusUpcoming})
				So(err, ShouldBeNil)
				So(upcoming, ShouldBeEmpty)

				past, err := f.svc.ListEvents(ctx, service.EventFilter{Status: model.StatusPast})
				So(err, ShouldBeNil)
				So(past, ShouldHaveLength, 1)
				So(past[0].ID, ShouldEqual, e.ID)
				So(past[0].Status, ShouldEqual, model.StatusPast)

				So(f.svc.RefreshStatuses(ctx), ShouldEqual, 1)
				So(f.svc.RefreshStatuses(ctx), ShouldEqual, 0)

				past, err = f.svc.ListEvents(ctx, service.EventFilter{Status: model.StatusPast})
				So(err, ShouldBeNil)
				So(past, ShouldHaveLength, 1)
			})
		})

		Convey("ListEvents without a limit returns more than one default page", func() {
			for i := 0; i < types.DefaultLimit+5; i++ {
				_, err := f.svc.CreateEvent(ctx, &model.Event{Title: fmt.Sprintf("Meetup %d", i), Date: "2025-08-01"})
				So(err, ShouldBeNil)
			}
			all, err := f.svc.ListEvents(ctx, service.EventFilter{})
			So(err, ShouldBeNil)
			So(all, ShouldHaveLength, types.DefaultLimit+5)

			page, err := f.svc.ListEvents(ctx, service.EventFilter{Limit: 10})
			So(err, ShouldBeNil)
			So(page, ShouldHaveLength, 10)
		})

		Convey("Invalid events are rejected", func() {
			_, err := f.svc.CreateEvent(ctx, &model.Event{Date: "2025-07-01"})
			So(err, shouldWrap, model.ErrInvalid)
			_, err = f.svc.CreateEvent(ctx, &model.Event{Title: "x", Date: "July 1st"})
			So(err, shouldWrap, model.ErrInvalid)
			_, err = f.svc.ListEvents(ctx, service.EventFilter{Status: "soon"})
			So(err, shouldWrap, model.ErrInvalid)
		})

		Convey("Missing events are not found", func() {
			_, err := f.svc.GetEvent(ctx, "nope")
			So(err, shouldWrap, model.ErrNotFound)
			So(f.svc.DeleteEvent(ctx, "nope"), shouldWrap, model.ErrNotFound)
		})
	})
}

func TestService_Uploads(t *testing.T) {
	Convey("Given a service with local storage", t, func() {
		f := newFixture(t)
		ctx := context.Background()

		Convey("UploadImage stores a sniffed image under its kind", func() {
			a, err := f.svc.UploadImage(ctx, model.KindBanner, fileHeader(t, "b.png", pngHeader))
			So(err, ShouldBeNil)
			So(a.ContentType, ShouldEqual, "image/png")
			So(strings.HasPrefix(a.Name, "banner/"), ShouldBeTrue)
			So(strings.HasSuffix(a.Name, ".png"), ShouldBeTrue)
			So(a.URL, ShouldEqual, "http://club.test/media/"+a.Name)
			path := filepath.Join(f.mediaDir, filepath.FromSlash(a.Name))
			So(exists(path), ShouldBeTrue)

			Convey("and deleting the event that uses it removes the object", func() {
				e, err := f.svc.CreateEvent(ctx, &model.Event{Title: "Expo", Date: "2025-03-01", BannerImage: a.URL})
				So(err, ShouldBeNil)

				gallery, err := f.svc.ListGallery(ctx)
				So(err, ShouldBeNil)
				So(gallery, ShouldHaveLength, 1)

				So(f.svc.DeleteEvent(ctx, e.ID), ShouldBeNil)
				So(eventually(func() bool { return !exists(path) }), ShouldBeTrue)
			})

			Convey("and replacing the banner removes the old object", func() {
				e, err := f.svc.CreateEvent(ctx, &model.Event{Title: "Expo", Date: "2025-03-01", BannerImage: a.URL})
				So(err, ShouldBeNil)
				external := "https://cdn.example.com/banner.png"
				_, err = f.svc.PatchEvent(ctx, e.ID, model.EventPatch{BannerImage: &external})
				So(err, ShouldBeNil)
				So(eventually(func() bool { return !exists(path) }), ShouldBeTrue)
			})

			Convey("and DeleteImage accepts the URL", func() {
				So(f.svc.DeleteImage(ctx, a.URL), ShouldBeNil)
				So(eventually(func() bool { return !exists(path) }), ShouldBeTrue)
			})
		})

		Convey("Non-images are unsupported", func() {
			_, err := f.svc.UploadImage(ctx, model.KindPoster, fileHeader(t, "notes.txt", []byte("hello world")))
			So(err, shouldWrap, model.ErrUnsupportedMedia)
		})

		Convey("Oversized files are too large", func() {
			big := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 2048)...)
			_, err := f.svc.UploadImage(ctx, model.KindPoster, fileHeader(t, "big.png", big))
			So(err, shouldWrap, model.ErrTooLarge)
		})

		Convey("A failing gallery upload cleans up what it stored", func() {
			_, err := f.svc.UploadGallery(ctx, []*multipart.FileHeader{
				fileHeader(t, "1.png", pngHeader),
				fileHeader(t, "2.txt", []byte("nope")),
			})
			So(err, shouldWrap, model.ErrUnsupportedMedia)
			So(eventually(func() bool {
				entries, _ := os.ReadDir(filepath.Join(f.mediaDir, "gallery"))
				return len(entries) == 0
			}), ShouldBeTrue)

			assets, err := f.svc.UploadGallery(ctx, []*multipart.FileHeader{
				fileHeader(t, "1.png", pngHeader),
				fileHeader(t, "2.png", pngHeader),
			})
			So(err, ShouldBeNil)
			So(assets, ShouldHaveLength, 2)
		})

		Convey("DeleteImage rejects traversal", func() {
			So(f.svc.DeleteImage(ctx, "../../etc/passwd"), shouldWrap, model.ErrInvalid)
		})
	})
}
