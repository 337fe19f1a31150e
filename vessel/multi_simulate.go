package vessel

import (
	"context"
	"fmt"

	"gillespie/internal/ordered"
)

// Result pairs a reducer's value with any error it produced, the shape
// MultiSimulateErr's output channel carries.
type Result[R any] struct {
	Value R
	Err   error
}

// MultiSimulate runs n independent trajectories of v in parallel -- one
// goroutine per trajectory, each with its own private RNG and count
// vector, none sharing mutable state -- and applies reduce to each
// trajectory's stream. The returned channel yields exactly n values in
// submission order (index 0..n-1), not completion order: reading element
// i never waits on element j > i, but yielding blocks on the slowest
// prefix. A reducer that panics yields the zero value at its position and
// logs the recovered panic via Logger; reducers that can fail should use
// MultiSimulateErr instead.
//
// Go methods cannot carry their own type parameters, so this is a
// package-level function taking v explicitly rather than a *Vessel method.
func MultiSimulate[R any](ctx context.Context, v *Vessel, n int, reduce func(<-chan State) R) <-chan R {
	wrapped := func(s <-chan State) (R, error) {
		return reduce(s), nil
	}
	errs := MultiSimulateErr[R](ctx, v, n, wrapped)

	out := make(chan R)
	go func() {
		defer close(out)
		for r := range errs {
			select {
			case out <- r.Value:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// MultiSimulateErr is MultiSimulate's fallible twin: reduce may return an
// error (or panic, which is recovered and surfaced the same way), and the
// failure is visible only when its output position is read -- earlier and
// later positions are produced regardless.
func MultiSimulateErr[R any](ctx context.Context, v *Vessel, n int, reduce func(<-chan State) (R, error)) <-chan Result[R] {
	raw := make(chan ordered.Indexed[Result[R]])

	for i := 0; i < n; i++ {
		go func(index int) {
			result := runReducer(ctx, v, reduce)
			select {
			case raw <- ordered.Indexed[Result[R]]{Index: index, Value: result}:
			case <-ctx.Done():
			}
		}(i)
	}

	return ordered.Collect(ctx, n, raw)
}

func runReducer[R any](ctx context.Context, v *Vessel, reduce func(<-chan State) (R, error)) (result Result[R]) {
	defer func() {
		if r := recover(); r != nil {
			result = Result[R]{Err: fmt.Errorf("vessel: reducer panicked: %v", r)}
			Logger.Printf("recovered panic in MultiSimulate reducer: %v", r)
		}
	}()

	stream := v.Simulate(ctx)
	value, err := reduce(stream)
	return Result[R]{Value: value, Err: err}
}
