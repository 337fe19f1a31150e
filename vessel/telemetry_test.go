package vessel

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestAtomicFloat64(t *testing.T) {
	Convey("Given an AtomicFloat64 initialized to zero", t, func() {
		af := NewAtomicFloat64(0)

		Convey("When Add succeeds", func() {
			newVal, ok := af.Add(2.5)

			Convey("Then the new value is observable via Read", func() {
				So(ok, ShouldBeTrue)
				So(newVal, ShouldEqual, 2.5)
				So(af.Read(), ShouldEqual, 2.5)
			})
		})
	})
}

func TestTrackProgressAccumulatesAcrossTrajectories(t *testing.T) {
	Convey("Given a decay vessel and a Progress tracker", t, func() {
		v := decayVessel()
		p := NewProgress()

		countStates := func(stream <-chan State) int {
			n := 0
			for range stream {
				n++
			}
			return n
		}

		Convey("When several trajectories run through TrackProgress", func() {
			n := 4
			for r := range MultiSimulate(context.Background(), v, n, TrackProgress(p, countStates)) {
				So(r, ShouldEqual, 4)
			}

			Convey("Then Progress reflects every completed trajectory", func() {
				trajectories, totalTime := p.Snapshot()
				So(trajectories, ShouldEqual, int64(n))
				So(totalTime, ShouldBeGreaterThan, 0.0)
			})
		})
	})
}

func TestReportProgressEmitsSnapshots(t *testing.T) {
	Convey("Given a Progress tracker with one recorded trajectory", t, func() {
		p := NewProgress()
		p.record(1.0)

		Convey("When ReportProgress ticks", func() {
			ctx, cancel := context.WithCancel(context.Background())
			reports := ReportProgress(ctx, p, 5*time.Millisecond)
			first := <-reports
			cancel()
			for range reports {
			}

			Convey("Then the first report reflects the tracker's state", func() {
				So(first.Trajectories, ShouldEqual, int64(1))
				So(first.TotalTime, ShouldEqual, 1.0)
			})
		})
	})
}
