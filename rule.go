package parseforest

import (
	"fmt"
	"strings"
)

// Rule is a production: a head name plus an ordered list of symbols and an
// integer penalty (default 0). Identity is by pointer; rules serve as map
// keys throughout the chart and forest packages.
type Rule struct {
	Head    string
	Symbols []Symbol
	Penalty int

	// Priority is assigned by RuleSet.Add: the 1-based insertion index of
	// this rule among all rules sharing its head. It drives PreferEarly
	// and PreferLate trimming during forest post-processing.
	Priority int

	// Transparent marks a rule whose builder frames (StartRule, Extend,
	// EndRule) are elided during traversal, passing its single child's
	// value through unchanged. Used for the synthetic wrapper rule around
	// the start symbol.
	Transparent bool

	// Serial is a monotonically increasing identity assigned by RuleSet,
	// used to break ties deterministically when a chart column's items are
	// ordered for tracing and diagnostics.
	Serial int
}

// NewRule constructs a rule for head with the given right-hand-side
// symbols and a default penalty of 0. Use WithRulePenalty to set a
// non-zero penalty.
func NewRule(head string, symbols ...Symbol) *Rule {
	return &Rule{Head: head, Symbols: symbols}
}

// RuleOption configures a Rule at construction time.
type RuleOption func(*Rule)

// WithRulePenalty sets the rule's penalty, used by forest post-processing
// to prefer lower-cost derivations.
func WithRulePenalty(penalty int) RuleOption {
	return func(r *Rule) { r.Penalty = penalty }
}

// Apply applies RuleOptions to a freshly constructed rule and returns it,
// for call sites that prefer NewRule(...).Apply(WithRulePenalty(1)).
func (r *Rule) Apply(opts ...RuleOption) *Rule {
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Length returns the number of symbols on the right-hand side.
func (r *Rule) Length() int {
	return len(r.Symbols)
}

func (r *Rule) String() string {
	parts := make([]string, len(r.Symbols))
	for i, s := range r.Symbols {
		parts[i] = s.String()
	}
	if r.Penalty == 0 {
		return fmt.Sprintf("%s -> %s", r.Head, strings.Join(parts, " "))
	}
	return fmt.Sprintf("%s -> %s (penalty %d)", r.Head, strings.Join(parts, " "), r.Penalty)
}
