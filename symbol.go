package parseforest

import "fmt"

// Quantifier is one of the four repetition markers a symbol inside a rule
// may carry.
type Quantifier uint8

const (
	// ExactlyOne is the default quantifier: the symbol must match exactly once.
	ExactlyOne Quantifier = iota
	// Optional marks a symbol as matching zero or one times ('?').
	Optional
	// Star marks a symbol as matching zero or more times ('*').
	Star
	// Plus marks a symbol as matching one or more times ('+').
	Plus
)

func (q Quantifier) String() string {
	switch q {
	case Optional:
		return "?"
	case Star:
		return "*"
	case Plus:
		return "+"
	default:
		return ""
	}
}

// minOccurs derives the minimum repetition count for a quantifier.
func (q Quantifier) minOccurs() int {
	if q == ExactlyOne || q == Plus {
		return 1
	}
	return 0
}

// multiple reports whether the quantifier allows more than one match.
func (q Quantifier) multiple() bool {
	return q == Star || q == Plus
}

// Symbol is the duck-typed shape the chart engine interprets. Applications
// may substitute any object honoring this shape; the constructors in this
// package (NewTerminal, NewNonTerminal) are the reference implementation.
//
// Match is only meaningful for terminals and Head only for non-terminals;
// the other is expected to return a zero value.
type Symbol interface {
	IsTerminal() bool
	Optional() bool
	Multiple() bool
	MinOccurs() int
	Greedy() bool
	Lazy() bool
	PreferEarly() bool
	PreferLate() bool
	Match(token interface{}) bool
	Head() string
	String() string
}

// symbolConfig accumulates the flags shared by both terminal and
// non-terminal symbols, validated once at construction time.
type symbolConfig struct {
	quantifier  Quantifier
	starSet     bool
	optionalSet bool
	plusSet     bool
	greedy      bool
	lazy        bool
	preferEarly bool
	preferLate  bool
	name        string
}

// Option configures a Symbol at construction time.
type Option func(*symbolConfig)

// WithOptional marks the symbol as optional ('?').
func WithOptional() Option {
	return func(c *symbolConfig) { c.quantifier = Optional; c.optionalSet = true }
}

// WithStar marks the symbol as repeating zero or more times ('*').
func WithStar() Option {
	return func(c *symbolConfig) { c.quantifier = Star; c.starSet = true }
}

// WithPlus marks the symbol as repeating one or more times ('+').
func WithPlus() Option {
	return func(c *symbolConfig) { c.quantifier = Plus; c.plusSet = true }
}

// WithGreedy prefers matching over skipping for a quantified symbol.
func WithGreedy() Option {
	return func(c *symbolConfig) { c.greedy = true }
}

// WithLazy prefers skipping over matching for a quantified symbol.
func WithLazy() Option {
	return func(c *symbolConfig) { c.lazy = true }
}

// WithPreferEarly prefers the lowest-priority rule when a non-terminal
// reduces ambiguously.
func WithPreferEarly() Option {
	return func(c *symbolConfig) { c.preferEarly = true }
}

// WithPreferLate prefers the highest-priority rule when a non-terminal
// reduces ambiguously.
func WithPreferLate() Option {
	return func(c *symbolConfig) { c.preferLate = true }
}

// WithName attaches a human-readable name used in tracing and error
// reporting, not otherwise interpreted by the engine.
func WithName(name string) Option {
	return func(c *symbolConfig) { c.name = name }
}

func buildConfig(opts []Option) symbolConfig {
	var c symbolConfig
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// validate enforces the mutual-exclusion invariants: the
// combinations star+optional+plus, greedy+lazy and prefer_early+prefer_late
// are all mutually exclusive, and greedy/lazy only make sense alongside a
// quantifier that is optional or allows repetition.
func (c symbolConfig) validate() error {
	n := 0
	if c.starSet {
		n++
	}
	if c.optionalSet {
		n++
	}
	if c.plusSet {
		n++
	}
	if n > 1 {
		return fmt.Errorf("parseforest: symbol %q carries more than one quantifier", c.name)
	}
	if c.greedy && c.lazy {
		return fmt.Errorf("parseforest: symbol %q is both greedy and lazy", c.name)
	}
	if c.preferEarly && c.preferLate {
		return fmt.Errorf("parseforest: symbol %q prefers both early and late", c.name)
	}
	if (c.greedy || c.lazy) && c.quantifier == ExactlyOne {
		return fmt.Errorf("parseforest: symbol %q has a greedy/lazy hint but no optional/repeating quantifier", c.name)
	}
	return nil
}

// terminalSymbol matches single input tokens via an application-supplied
// predicate.
type terminalSymbol struct {
	symbolConfig
	match func(token interface{}) bool
}

// NewTerminal creates a terminal symbol matching tokens for which match
// returns true. It panics if the option combination is invalid; a bad
// combination is always a programmer error in the grammar, never an
// input-dependent failure.
func NewTerminal(match func(token interface{}) bool, opts ...Option) Symbol {
	cfg := buildConfig(opts)
	if err := cfg.validate(); err != nil {
		panic(err)
	}
	if cfg.preferEarly || cfg.preferLate {
		panic(fmt.Errorf("parseforest: terminal %q cannot carry prefer_early/prefer_late", cfg.name))
	}
	return &terminalSymbol{symbolConfig: cfg, match: match}
}

func (t *terminalSymbol) IsTerminal() bool { return true }
func (t *terminalSymbol) Optional() bool { return t.quantifier == Optional }
func (t *terminalSymbol) Multiple() bool { return t.quantifier.multiple() }
func (t *terminalSymbol) MinOccurs() int { return t.quantifier.minOccurs() }
func (t *terminalSymbol) Greedy() bool { return t.greedy }
func (t *terminalSymbol) Lazy() bool { return t.lazy }
func (t *terminalSymbol) PreferEarly() bool { return false }
func (t *terminalSymbol) PreferLate() bool { return false }
func (t *terminalSymbol) Head() string { return "" }
func (t *terminalSymbol) Match(tok interface{}) bool {
	return t.match(tok)
}
func (t *terminalSymbol) String() string {
	if t.name != "" {
		return fmt.Sprintf("%s%s", t.name, t.quantifier)
	}
	return fmt.Sprintf("<terminal>%s", t.quantifier)
}

// nonTerminalSymbol refers to a grammar head by name.
type nonTerminalSymbol struct {
	symbolConfig
	head string
}

// NewNonTerminal creates a non-terminal symbol referring to the rules
// registered for head. It panics under the same conditions as NewTerminal.
func NewNonTerminal(head string, opts ...Option) Symbol {
	cfg := buildConfig(opts)
	if err := cfg.validate(); err != nil {
		panic(err)
	}
	return &nonTerminalSymbol{symbolConfig: cfg, head: head}
}

func (n *nonTerminalSymbol) IsTerminal() bool { return false }
func (n *nonTerminalSymbol) Optional() bool { return n.quantifier == Optional }
func (n *nonTerminalSymbol) Multiple() bool { return n.quantifier.multiple() }
func (n *nonTerminalSymbol) MinOccurs() int { return n.quantifier.minOccurs() }
func (n *nonTerminalSymbol) Greedy() bool { return n.greedy }
func (n *nonTerminalSymbol) Lazy() bool { return n.lazy }
func (n *nonTerminalSymbol) PreferEarly() bool { return n.preferEarly }
func (n *nonTerminalSymbol) PreferLate() bool { return n.preferLate }
func (n *nonTerminalSymbol) Head() string { return n.head }
func (n *nonTerminalSymbol) Match(tok interface{}) bool { return false }
func (n *nonTerminalSymbol) String() string {
	if n.name != "" {
		return fmt.Sprintf("%s%s", n.name, n.quantifier)
	}
	return fmt.Sprintf("%s%s", n.head, n.quantifier)
}
