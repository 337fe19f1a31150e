// Package reaction holds the algebraic vocabulary of a reaction network:
// agent tokens, agent sets, and the builder chain that turns a reactant
// set, a rate, and a product set into an immutable ReactionRule.
//
// Go has no operator overloading, so a reaction is built as a fluent
// chain instead of an infix expression:
//
//	(A.Union(DA)).Rate(2.3).To(D_A)   // reactants A+DA, rate 2.3, product D_A
package reaction

import "errors"

// ErrSingletonExpected is returned when the single token is requested out
// of an AgentSet that does not hold exactly one token.
var ErrSingletonExpected = errors.New("reaction: agent set is not a singleton")

// AgentToken is the vessel-local dense integer identity of a species.
//
// Tokens are bare integers: nothing here prevents a caller from taking a
// token minted by one Vessel and using it against another. Tagging tokens
// with a vessel identity was considered and deliberately left undone.
type AgentToken uint32

// AgentCount is a nonnegative species population.
type AgentCount uint64

// AgentSet is an unordered set of agent tokens, kept internally sorted in
// ascending order so that iteration is deterministic for pretty-printing.
// The empty AgentSet denotes the environment (source/sink).
type AgentSet struct {
	tokens []AgentToken
}

// NewAgentSet builds a set containing the given tokens, deduplicated.
func NewAgentSet(tokens ...AgentToken) AgentSet {
	var s AgentSet
	for _, t := range tokens {
		s = s.insert(t)
	}
	return s
}

func (s AgentSet) insert(t AgentToken) AgentSet {
	i := 0
	for i < len(s.tokens) && s.tokens[i] < t {
		i++
	}
	if i < len(s.tokens) && s.tokens[i] == t {
		return s
	}
	out := make([]AgentToken, 0, len(s.tokens)+1)
	out = append(out, s.tokens[:i]...)
	out = append(out, t)
	out = append(out, s.tokens[i:]...)
	return AgentSet{tokens: out}
}

// Union returns a new set containing every token present in s or other,
// deduplicated. Union is commutative, associative, and has the empty set
// as its identity: s.Union(s) == s.
func (s AgentSet) Union(other AgentSet) AgentSet {
	out := s
	for _, t := range other.tokens {
		out = out.insert(t)
	}
	return out
}

// Join unions any number of sets; it is the n-ary convenience form of
// Union for reactions with more than two reactants or products.
func Join(sets ...AgentSet) AgentSet {
	var out AgentSet
	for _, s := range sets {
		out = out.Union(s)
	}
	return out
}

// Tokens returns the set's tokens in ascending order. The returned slice
// is a copy; mutating it does not affect the set.
func (s AgentSet) Tokens() []AgentToken {
	out := make([]AgentToken, len(s.tokens))
	copy(out, s.tokens)
	return out
}

// Len reports the number of distinct tokens in the set.
func (s AgentSet) Len() int {
	return len(s.tokens)
}

// IsEmpty reports whether the set denotes the environment.
func (s AgentSet) IsEmpty() bool {
	return len(s.tokens) == 0
}

// Token returns the set's single token. It fails with ErrSingletonExpected
// if the set does not hold exactly one token.
func (s AgentSet) Token() (AgentToken, error) {
	if len(s.tokens) != 1 {
		return 0, ErrSingletonExpected
	}
	return s.tokens[0], nil
}

// Contains reports whether t is a member of the set.
func (s AgentSet) Contains(t AgentToken) bool {
	for _, v := range s.tokens {
		if v == t {
			return true
		}
	}
	return false
}

// Rate attaches a rate constant to s as reactants, producing the
// intermediate value needed to close a ReactionRule with To.
func (s AgentSet) Rate(k float64) AgentSetAndRate {
	return AgentSetAndRate{Reactants: s, Rate: k}
}

// AgentSetAndRate is a reactant set paired with its rate constant; the
// intermediate product of AgentSet.Rate, closed into a ReactionRule by To.
type AgentSetAndRate struct {
	Reactants AgentSet
	Rate      float64
}

// To closes the builder chain, producing the final immutable rule.
func (ar AgentSetAndRate) To(products AgentSet) ReactionRule {
	return ReactionRule{Reactants: ar.Reactants, Rate: ar.Rate, Products: products}
}

// ReactionRule is an immutable mass-action rewrite rule: reactants are
// consumed and products produced at instantaneous rate
// Rate * product-of-reactant-populations. Either side may be empty
// (empty Reactants models spontaneous creation from the environment,
// empty Products models decay into it). A species present on both sides
// nets to zero stoichiometric change but still counts toward propensity.
type ReactionRule struct {
	Reactants AgentSet
	Rate      float64
	Products  AgentSet
}

// NetChange reports the tokens to decrement and increment for one firing
// of the rule: tokens in Reactants but not Products are decremented,
// tokens in Products but not Reactants are incremented, and tokens in
// both sides are left alone.
func (r ReactionRule) NetChange() (decrement, increment []AgentToken) {
	for _, t := range r.Reactants.tokens {
		if !r.Products.Contains(t) {
			decrement = append(decrement, t)
		}
	}
	for _, t := range r.Products.tokens {
		if !r.Reactants.Contains(t) {
			increment = append(increment, t)
		}
	}
	return decrement, increment
}
