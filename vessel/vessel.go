// Package vessel assembles a reaction network (species + rules), drives
// it with Gillespie's direct-method stochastic simulation algorithm, and
// renders it as text or Graphviz DOT.
package vessel

import (
	"errors"
	"fmt"
	"log"
	"os"

	"gillespie/reaction"
	"gillespie/symtab"
)

// ErrDuplicateSpecies is returned by AddSpecies when the given name is
// already registered in this vessel.
var ErrDuplicateSpecies = errors.New("vessel: duplicate species name")

// Logger is used for rare, non-fatal conditions only (RNG entropy
// fallback, a recovered reducer panic in MultiSimulate) -- never for
// routine simulation steps, which are far too hot a path to log.
var Logger = log.New(os.Stderr, "vessel: ", log.LstdFlags)

// State is a single trajectory snapshot: the population of every
// registered species, indexed by AgentToken, and the elapsed simulation
// time. Named State rather than VesselState to avoid stutter at call
// sites (vessel.State, state.Time).
type State struct {
	Counts []reaction.AgentCount
	Time   float64
}

// Clone returns a State holding an independent copy of Counts, so a
// consumer can retain a snapshot across further Simulate pulls without
// it being mutated out from under them.
func (s State) Clone() State {
	out := State{Counts: make([]reaction.AgentCount, len(s.Counts)), Time: s.Time}
	copy(out.Counts, s.Counts)
	return out
}

// Vessel is a named, build-then-simulate reaction network: a set of
// species with initial populations, plus a list of reaction rules in
// insertion order. Once built, a Vessel is read-only: Simulate and
// MultiSimulate share it across goroutines without synchronization.
type Vessel struct {
	name    string
	species *symtab.Table[reaction.AgentToken, string]
	initial []reaction.AgentCount
	rules   []reaction.ReactionRule
}

// NewVessel constructs an empty, named vessel.
func NewVessel(name string) *Vessel {
	return &Vessel{
		name: name,
		species: symtab.New[reaction.AgentToken, string](
			func(a, b reaction.AgentToken) bool { return a < b },
			func(a, b string) bool { return a < b },
		),
	}
}

// Name returns the vessel's name.
func (v *Vessel) Name() string {
	return v.name
}

// Species returns the species symbol table (token -> name, and the
// reverse lookup via LookupByValue), for downstream callers that need to
// translate a name to an index into a State's Counts or vice versa.
func (v *Vessel) Species() *symtab.Table[reaction.AgentToken, string] {
	return v.species
}

// Initial returns the initial population vector, indexed by AgentToken.
func (v *Vessel) Initial() []reaction.AgentCount {
	out := make([]reaction.AgentCount, len(v.initial))
	copy(out, v.initial)
	return out
}

// Rules returns the registered reaction rules in insertion order.
func (v *Vessel) Rules() []reaction.ReactionRule {
	out := make([]reaction.ReactionRule, len(v.rules))
	copy(out, v.rules)
	return out
}

// Environment returns the empty AgentSet: the conceptual source/sink that
// appears as the reactant or product side of a boundary reaction.
func (v *Vessel) Environment() reaction.AgentSet {
	return reaction.NewAgentSet()
}

// AddSpecies registers a new species, allocating the next dense token and
// returning the singleton AgentSet naming it. It fails with
// ErrDuplicateSpecies if name is already registered; on failure Initial is
// left untouched (the symbol table is updated only after Store succeeds,
// and the count is appended only after that).
func (v *Vessel) AddSpecies(name string, initial reaction.AgentCount) (reaction.AgentSet, error) {
	token := reaction.AgentToken(len(v.initial))
	if err := v.species.Store(token, name); err != nil {
		return reaction.AgentSet{}, fmt.Errorf("%w: %q", ErrDuplicateSpecies, name)
	}
	v.initial = append(v.initial, initial)
	return reaction.NewAgentSet(token), nil
}

// AddRule appends rule to the network. Tokens referenced by rule are not
// validated against this vessel's species; passing a rule built from
// another vessel's tokens is a programmer error that silently produces
// garbage.
func (v *Vessel) AddRule(rule reaction.ReactionRule) {
	v.rules = append(v.rules, rule)
}

// TranslateState decodes a count vector into (species name, count) pairs,
// in ascending-token order. It is the glue downstream consumers (a
// visualizer, a reducer in MultiSimulate) use to go from a bare State back
// to named populations.
func (v *Vessel) TranslateState(counts []reaction.AgentCount) ([]NamedCount, error) {
	out := make([]NamedCount, 0, len(counts))
	for i, c := range counts {
		name, err := v.species.Lookup(reaction.AgentToken(i))
		if err != nil {
			return nil, fmt.Errorf("vessel: translating state at token %d: %w", i, err)
		}
		out = append(out, NamedCount{Name: name, Count: c})
	}
	return out, nil
}

// NamedCount pairs a species name with its population, the decoded form
// of one entry of a State's Counts vector.
type NamedCount struct {
	Name  string
	Count reaction.AgentCount
}
