package vessel

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"math/big"
	mrand "math/rand"
	"time"

	"gillespie/reaction"
)

// stepper holds one trajectory's mutable state: the current population
// vector, elapsed time, a private RNG, and a read-only pointer to the
// vessel's rule slice. Simulate wraps it into a channel-based generator.
type stepper struct {
	rules  []reaction.ReactionRule
	counts []reaction.AgentCount
	time   float64
	rng    *mrand.Rand
}

func newStepper(v *Vessel, rng *mrand.Rand) *stepper {
	return &stepper{
		rules:  v.rules,
		counts: v.Initial(),
		rng:    rng,
	}
}

// step advances the trajectory by one reaction using the direct method:
// a per-rule exponential candidate delay, the minimum of which (ties
// broken by lowest rule index) selects the firing rule. It reports
// (snapshot, true) on a firing, or (State{}, false) when no rule is
// active (every candidate has a zero-population reactant, or rate zero).
func (s *stepper) step() (State, bool) {
	best := -1
	bestDelay := 0.0

	for i, rule := range s.rules {
		h := propensityFactor(s.counts, rule.Reactants)
		if h == 0 || rule.Rate == 0 {
			continue
		}
		delay := s.rng.ExpFloat64() / (h * rule.Rate)
		if best == -1 || delay < bestDelay {
			best = i
			bestDelay = delay
		}
	}

	if best == -1 {
		return State{}, false
	}

	rule := s.rules[best]
	s.time += bestDelay
	for _, t := range rule.Reactants.Tokens() {
		s.counts[t]--
	}
	for _, t := range rule.Products.Tokens() {
		s.counts[t]++
	}

	return State{Counts: s.counts, Time: s.time}, true
}

// propensityFactor computes h = product of populations of every token in
// reactants; the empty product (no reactants, spontaneous creation from
// the environment) is 1, matching standard convention.
func propensityFactor(counts []reaction.AgentCount, reactants reaction.AgentSet) float64 {
	h := 1.0
	for _, t := range reactants.Tokens() {
		if counts[t] == 0 {
			return 0
		}
		h *= float64(counts[t])
	}
	return h
}

// Simulate produces a lazy, restartable trajectory of this vessel on an
// unbuffered channel: the first value is (initial state, t=0), each
// subsequent value is the state immediately after one reaction fires, and
// the channel closes when no reaction has positive propensity or ctx is
// done. Each call seeds its own RNG independently, so two concurrent or
// sequential calls to Simulate never share randomness.
//
// Every State sent on the channel is a Clone of the stepper's live
// buffer, so a received snapshot is never mutated by later steps and may
// be retained across receives.
func (v *Vessel) Simulate(ctx context.Context) <-chan State {
	return v.SimulateSeeded(ctx, seedFromEntropy())
}

// SimulateSeeded is the reproducible-testing counterpart to Simulate: it
// drives the same direct-method stepper from an explicitly supplied seed,
// so a test can assert exact trajectories.
func (v *Vessel) SimulateSeeded(ctx context.Context, seed int64) <-chan State {
	out := make(chan State)
	st := newStepper(v, mrand.New(mrand.NewSource(seed)))

	go func() {
		defer close(out)

		snapshot := State{Counts: st.counts, Time: st.time}
		select {
		case out <- snapshot.Clone():
		case <-ctx.Done():
			return
		}

		for {
			next, ok := st.step()
			if !ok {
				return
			}
			select {
			case out <- next.Clone():
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// seedFromEntropy draws a seed from a non-deterministic OS entropy
// source. If reading entropy fails (should not happen in practice on any
// supported platform), it falls back to a time-based seed and logs the
// fallback -- it never fails silently.
func seedFromEntropy() int64 {
	max := big.NewInt(1)
	max.Lsh(max, 63)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		Logger.Printf("falling back to time-based RNG seed: entropy read failed: %v", err)
		return time.Now().UnixNano()
	}
	var buf [8]byte
	n.FillBytes(buf[:])
	return int64(binary.BigEndian.Uint64(buf[:]))
}
