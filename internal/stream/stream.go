// Package stream wraps github.com/niceyeti/channerics helpers for the
// fan-out worker shapes used by package vessel: merging worker channels,
// and a done-aware heartbeat ticker for long MultiSimulate runs.
package stream

import (
	"context"
	"time"

	channerics "github.com/niceyeti/channerics/channels"
)

// MergeUnordered fans in every worker channel as soon as values arrive,
// with no regard for which worker or submission index a value came from.
// It is offered as a cheap-throughput alternative to the ordered
// collector vessel.MultiSimulate uses -- callers who genuinely don't need
// index order can trade that guarantee for raw throughput.
func MergeUnordered[T any](done <-chan struct{}, channels ...<-chan T) <-chan T {
	return channerics.Merge(done, channels...)
}

// Heartbeat emits a tick every interval until ctx is done, a done-channel
// ticker gated on a context instead of a bare done channel. A long-running
// MultiSimulate caller can range over Heartbeat to drive periodic
// liveness output without polling Progress on its own clock.
func Heartbeat(ctx context.Context, interval time.Duration) <-chan time.Time {
	return channerics.NewTicker(ctx.Done(), interval)
}
