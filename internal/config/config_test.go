package config_test

import (
	"testing"
	"time"

	"github.com/pranav-2399/nexus-website/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.Database.Driver, convey.ShouldEqual, "sqlite")
			convey.So(cfg.Storage.Backend, convey.ShouldEqual, "local")
			convey.So(cfg.Storage.MaxUploadBytes, convey.ShouldEqual, int64(10<<20))
			convey.So(cfg.Jobs.QueueSize, convey.ShouldEqual, 1024)
			convey.So(cfg.StatusRefreshInterval, convey.ShouldEqual, time.Minute)
			convey.So(cfg.AdminEnabled(), convey.ShouldBeFalse)
		})

		convey.Convey("Then the defaults validate", func() {
			convey.So(config.Validate(cfg), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Location(t *testing.T) {
	convey.Convey("Given a timezone", t, func() {
		cfg := config.New()

		convey.Convey("When it is a known zone", func() {
			cfg.Timezone = "Asia/Kolkata"
			convey.So(cfg.Location().String(), convey.ShouldEqual, "Asia/Kolkata")
		})

		convey.Convey("When it is unknown", func() {
			cfg.Timezone = "Mars/Olympus"
			convey.So(cfg.Location(), convey.ShouldEqual, time.UTC)
		})
	})
}

func TestConfig_AdminEnabled(t *testing.T) {
	convey.Convey("Given admin tokens", t, func() {
		cfg := config.New()

		convey.Convey("Blank entries do not enable admin routes", func() {
			cfg.AdminTokens = []string{""}
			convey.So(cfg.AdminEnabled(), convey.ShouldBeFalse)
		})

		convey.Convey("A real token enables them", func() {
			cfg.AdminTokens = []string{"", "s3cret"}
			convey.So(cfg.AdminEnabled(), convey.ShouldBeTrue)
		})
	})
}
