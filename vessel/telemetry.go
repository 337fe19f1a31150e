package vessel

import (
	"context"
	"math"
	"sync/atomic"
	"time"
	"unsafe"

	"gillespie/internal/stream"
)

// AtomicFloat64 encapsulates a float64 for lock-free concurrent updates: a
// struct wrapping the value rather than free functions taking a *float64,
// with an Add that reports whether its CAS won instead of spinning until
// it does -- if the value changed underneath a caller, the caller decides
// whether to retry, recompute, or drop the update, rather than blindly
// looping.
//
// Used here by Progress to aggregate per-worker trajectory telemetry
// (total simulated time) across MultiSimulate's goroutines without a
// mutex.
type AtomicFloat64 struct {
	val float64
}

// NewAtomicFloat64 wraps an initial value for atomic access.
func NewAtomicFloat64(val float64) *AtomicFloat64 {
	return &AtomicFloat64{val: val}
}

// Read atomically reads the current value.
func (af *AtomicFloat64) Read() float64 {
	return math.Float64frombits(atomic.LoadUint64((*uint64)(unsafe.Pointer(&af.val))))
}

// Add attempts to atomically add delta to the value via compare-and-swap
// against the value most recently observed by Read. It reports the
// resulting value and whether the swap succeeded; on failure the value
// changed concurrently and the caller may retry.
func (af *AtomicFloat64) Add(delta float64) (newVal float64, succeeded bool) {
	old := af.Read()
	newVal = old + delta
	succeeded = atomic.CompareAndSwapUint64(
		(*uint64)(unsafe.Pointer(&af.val)),
		math.Float64bits(old),
		math.Float64bits(newVal))
	return newVal, succeeded
}

// Progress aggregates completed-trajectory telemetry across MultiSimulate
// workers: a count of finished trajectories and the sum of their elapsed
// simulated time, both updated without locking.
type Progress struct {
	trajectories int64
	totalTime    *AtomicFloat64
}

// NewProgress returns a zeroed Progress tracker.
func NewProgress() *Progress {
	return &Progress{totalTime: NewAtomicFloat64(0)}
}

// record registers one finished trajectory's elapsed simulated time,
// retrying the CAS until it wins -- contention here is one add per
// finished worker, never per simulation step, so a spin is cheap.
func (p *Progress) record(elapsedTime float64) {
	atomic.AddInt64(&p.trajectories, 1)
	for {
		if _, ok := p.totalTime.Add(elapsedTime); ok {
			return
		}
	}
}

// Snapshot returns the number of completed trajectories and their summed
// elapsed simulated time so far.
func (p *Progress) Snapshot() (trajectories int64, totalTime float64) {
	return atomic.LoadInt64(&p.trajectories), p.totalTime.Read()
}

// TrackProgress wraps a MultiSimulate reducer so that, once its stream is
// exhausted, the trajectory's final elapsed time is folded into p. Pass
// the wrapped function to MultiSimulate / MultiSimulateErr in place of
// the bare reducer to get live progress without changing either driver's
// signature.
//
// If reduce stops pulling before its stream closes (e.g. a take_while(time
// < T) style early exit), the relay goroutine below is released once
// reduce returns, and the trajectory is recorded with the time of the last
// state reduce received. The Simulate stream feeding in is not drained.
func TrackProgress[R any](p *Progress, reduce func(<-chan State) R) func(<-chan State) R {
	return func(in <-chan State) R {
		var last State
		relay := make(chan State)
		stop := make(chan struct{})
		finished := make(chan struct{})
		go func() {
			defer close(finished)
			defer close(relay)
			for s := range in {
				select {
				case relay <- s:
					last = s
				case <-stop:
					return
				}
			}
		}()
		result := reduce(relay)
		close(stop)
		<-finished
		p.record(last.Time)
		return result
	}
}

// ProgressReport is one periodic snapshot emitted by ReportProgress.
type ProgressReport struct {
	Trajectories int64
	TotalTime    float64
}

// ReportProgress ticks every interval until ctx is done, emitting a
// ProgressReport snapshot of p each time, built on stream.Heartbeat.
func ReportProgress(ctx context.Context, p *Progress, interval time.Duration) <-chan ProgressReport {
	out := make(chan ProgressReport)
	go func() {
		defer close(out)
		for range stream.Heartbeat(ctx, interval) {
			trajectories, totalTime := p.Snapshot()
			select {
			case out <- ProgressReport{Trajectories: trajectories, TotalTime: totalTime}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
