package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"golang.org/x/crypto/bcrypt"

	"github.com/pranav-2399/nexus-website/cmd/nexusctl/internal/commands"
	"github.com/pranav-2399/nexus-website/internal/seeder"
	"github.com/pranav-2399/nexus-website/pkg/logger"
)

func execute(args ...string) (string, error) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestNexusctl(t *testing.T) {
	if err := logger.Init(); err != nil {
		t.Fatal(err)
	}
	t.Setenv("NEXUS_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	convey.Convey("Given the nexusctl root command", t, func() {
		convey.Convey("When generating a token", func() {
			out, err := execute("token")
			convey.So(err, convey.ShouldBeNil)
			convey.So(strings.TrimSpace(out), convey.ShouldHaveLength, 64)
			convey.So(regexp.MustCompile(`^[0-9a-f]+$`).MatchString(strings.TrimSpace(out)), convey.ShouldBeTrue)
		})

		convey.Convey("When generating a hashed token", func() {
			out, err := execute("token", "--hash", "--cost", "4")
			convey.So(err, convey.ShouldBeNil)

			lines := strings.Split(strings.TrimSpace(out), "\n")
			convey.So(lines, convey.ShouldHaveLength, 2)
			token := strings.TrimSpace(strings.TrimPrefix(lines[0], "token:"))
			hash := strings.TrimSpace(strings.TrimPrefix(lines[1], "hash:"))
			convey.So(bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)), convey.ShouldBeNil)
		})

		convey.Convey("When tokens are generated twice", func() {
			a, _ := commands.NewToken()
			b, _ := commands.NewToken()
			convey.So(a, convey.ShouldNotEqual, b)
		})

		convey.Convey("When migrating a sqlite database", func() {
			t.Setenv("NEXUS_DATABASE__DRIVER", "sqlite")
			t.Setenv("NEXUS_DATABASE__DSN", "file:"+filepath.Join(t.TempDir(), "nexus.db"))

			out, err := execute("migrate", "up")
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "up to date")

			convey.Convey("Then version and down need postgres", func() {
				_, err := execute("migrate", "version")
				convey.So(errors.Is(err, commands.ErrUnsupportedDriver), convey.ShouldBeTrue)

				_, err = execute("migrate", "down")
				convey.So(errors.Is(err, commands.ErrUnsupportedDriver), convey.ShouldBeTrue)
			})

			convey.Convey("And a non-positive step count is rejected", func() {
				_, err := execute("migrate", "down", "--steps", "0")
				convey.So(errors.Is(err, commands.ErrInvalidSteps), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When seeding without any work", func() {
			_, err := execute("seed", "--events", "0", "--team", "0", "--highlights", "0", "--feedback", "0")
			convey.So(errors.Is(err, seeder.ErrNoWork), convey.ShouldBeTrue)
		})

		convey.Convey("When seeding admin content without a token", func() {
			t.Setenv("NEXUS_ADMIN_TOKEN", "")
			_, err := execute("seed", "--url", "http://127.0.0.1:1")
			convey.So(errors.Is(err, seeder.ErrNeedsToken), convey.ShouldBeTrue)
		})

		convey.Convey("When an unknown command is given", func() {
			_, err := execute("frobnicate")
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}
