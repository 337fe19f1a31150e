// Package ordered reorders a stream of index-tagged results, produced by
// concurrent workers in whatever order they complete, back into ascending
// submission order -- the fan-in shape vessel.MultiSimulate needs, which
// channerics.Merge's unordered fan-in does not provide.
package ordered

import "context"

// Indexed tags a value with its submission index.
type Indexed[T any] struct {
	Index int
	Value T
}

// Collect reads exactly n Indexed values off in, each index 0..n-1
// appearing exactly once in any arrival order, and emits their Values on
// the returned channel in ascending index order. The channel closes after
// the nth value is emitted, after in closes early, or when ctx is done.
//
// Because values are held in a small map until their turn, a caller that
// stops pulling mid-sequence does not starve already-arrived results --
// it simply stops the reordering goroutine at ctx.Done(), leaving any
// still-running producers to finish and have their sends ignored.
func Collect[T any](ctx context.Context, n int, in <-chan Indexed[T]) <-chan T {
	out := make(chan T)

	go func() {
		defer close(out)

		pending := make(map[int]T, n)
		next := 0
		for next < n {
			select {
			case item, ok := <-in:
				if !ok {
					return
				}
				pending[item.Index] = item.Value
			case <-ctx.Done():
				return
			}

			for {
				v, found := pending[next]
				if !found {
					break
				}
				select {
				case out <- v:
					delete(pending, next)
					next++
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
