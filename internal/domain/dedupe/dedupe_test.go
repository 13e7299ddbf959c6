package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	dedupe "github.com/pranav-2399/nexus-website/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given a new InMemoryDeduper", t, func() {
		ctx := context.Background()

		Convey("When creating a deduper with default options", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("Then it should start empty", func() {
				So(d, ShouldNotBeNil)
				So(d.Size(), ShouldEqual, 0)
			})
		})

		Convey("When recording keys", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("And the key is new", func() {
				seen := d.SeenAndRecord(ctx, "k1")

				Convey("Then it should return false and record the key", func() {
					So(seen, ShouldBeFalse)
					So(d.Size(), ShouldEqual, 1)
				})
			})

			Convey("And the key was already seen", func() {
				d.SeenAndRecord(ctx, "k1")
				seen := d.SeenAndRecord(ctx, "k1")

				Convey("Then it should return true without growing", func() {
					So(seen, ShouldBeTrue)
					So(d.Size(), ShouldEqual, 1)
				})
			})
		})

		Convey("When unrecording keys", func() {
			d := dedupe.NewInMemoryDeduper()
			d.SeenAndRecord(ctx, "k1")
			d.Unrecord(ctx, "k1")
			d.Unrecord(ctx, "missing")

			Convey("Then the key can be recorded again", func() {
				So(d.Size(), ShouldEqual, 0)
				So(d.SeenAndRecord(ctx, "k1"), ShouldBeFalse)
			})
		})

		Convey("When the deduper is at capacity", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(2))
			d.SeenAndRecord(ctx, "a")
			d.SeenAndRecord(ctx, "b")
			d.SeenAndRecord(ctx, "c")

			Convey("Then the oldest key is evicted", func() {
				So(d.Size(), ShouldEqual, 2)
				So(d.SeenAndRecord(ctx, "c"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "b"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "a"), ShouldBeFalse)
			})
		})

		Convey("When using unbounded mode", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0), dedupe.WithTTL(0))
			for i := 0; i < 500; i++ {
				d.SeenAndRecord(ctx, fmt.Sprintf("k%d", i))
			}

			Convey("Then nothing is evicted", func() {
				So(d.Size(), ShouldEqual, 500)
			})
		})

		Convey("When keys outlive the TTL", func() {
			now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
			d := dedupe.NewInMemoryDeduper(
				dedupe.WithTTL(time.Minute),
				dedupe.WithClock(func() time.Time { return now }),
			)
			d.SeenAndRecord(ctx, "old")
			now = now.Add(30 * time.Second)
			d.SeenAndRecord(ctx, "fresh")
			now = now.Add(45 * time.Second)

			Convey("Then expired keys are forgotten and live ones kept", func() {
				So(d.SeenAndRecord(ctx, "old"), ShouldBeFalse)
				So(d.SeenAndRecord(ctx, "fresh"), ShouldBeTrue)
			})
		})
	})
}

func TestInMemoryDeduperConcurrency(t *testing.T) {
	Convey("Given a deduper with concurrent access", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))
		ctx := context.Background()

		Convey("When many goroutines record the same keys", func() {
			var wg sync.WaitGroup
			var mu sync.Mutex
			firsts := 0
			for g := 0; g < 8; g++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := 0; i < 100; i++ {
						if !d.SeenAndRecord(ctx, fmt.Sprintf("k%d", i)) {
							mu.Lock()
							firsts++
							mu.Unlock()
						}
					}
				}()
			}
			wg.Wait()

			Convey("Then each key is new exactly once", func() {
				So(firsts, ShouldEqual, 100)
				So(d.Size(), ShouldEqual, 100)
			})
		})
	})
}

func TestContentKey(t *testing.T) {
	Convey("Given submission fields", t, func() {
		Convey("Then case and padding do not change the key", func() {
			So(dedupe.ContentKey("Asha", "A@B.com", "hi"), ShouldEqual, dedupe.ContentKey(" asha", "a@b.com ", "HI"))
		})

		Convey("Then field boundaries matter", func() {
			So(dedupe.ContentKey("ab", "c"), ShouldNotEqual, dedupe.ContentKey("a", "bc"))
		})
	})
}
