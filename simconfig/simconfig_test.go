package simconfig

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoadRoundTrip(t *testing.T) {
	Convey("Given a run-configuration YAML file", t, func() {
		dir := t.TempDir()
		path := writeFixture(t, dir, "run.yaml", `
kind: simulationRun
def:
  workers: 4
  defaultSeed: 7
  deadline: "10s"
`)

		Convey("When loaded", func() {
			cfg, err := Load(path)

			Convey("Then its fields round-trip exactly", func() {
				So(err, ShouldBeNil)
				So(cfg.Workers, ShouldEqual, 4)
				So(cfg.DefaultSeed, ShouldEqual, int64(7))
				So(cfg.Deadline, ShouldEqual, "10s")
			})
		})
	})

	Convey("Given a config with no workers set", t, func() {
		dir := t.TempDir()
		path := writeFixture(t, dir, "run.yaml", `
kind: simulationRun
def:
  defaultSeed: 1
`)

		Convey("When loaded", func() {
			cfg, err := Load(path)

			Convey("Then Workers defaults to runtime.NumCPU()", func() {
				So(err, ShouldBeNil)
				So(cfg.Workers, ShouldBeGreaterThan, 0)
			})
		})
	})

	Convey("Given a missing file", t, func() {
		Convey("When loaded", func() {
			_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

			Convey("Then it surfaces a wrapped read error", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestWithDeadline(t *testing.T) {
	Convey("Given a config with a deadline set", t, func() {
		cfg := &Config{Deadline: "10s"}

		Convey("When WithDeadline extends a context", func() {
			ctx, cancel, err := cfg.WithDeadline(context.Background())
			defer cancel()

			Convey("Then the context carries a deadline", func() {
				So(err, ShouldBeNil)
				_, ok := ctx.Deadline()
				So(ok, ShouldBeTrue)
			})
		})
	})

	Convey("Given a config with an invalid deadline", t, func() {
		cfg := &Config{Deadline: "not-a-duration"}

		Convey("When WithDeadline is called", func() {
			_, _, err := cfg.WithDeadline(context.Background())

			Convey("Then it fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestLoadIncludesFailsFast(t *testing.T) {
	Convey("Given a config referencing one good and one missing include", t, func() {
		dir := t.TempDir()
		good := writeFixture(t, dir, "good.yaml", `
kind: simulationRun
def:
  workers: 2
`)
		cfg := &Config{Includes: []string{good, filepath.Join(dir, "missing.yaml")}}

		Convey("When LoadIncludes runs", func() {
			_, err := cfg.LoadIncludes(context.Background())

			Convey("Then it fails fast on the bad include", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
