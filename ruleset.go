package parseforest

// RuleSet maps head names to the ordered list of rules defining them. A
// rule set handed to the chart engine is read-only for the duration of the
// parse, except that chart.Run adds its synthetic wrapper rule and marks
// that rule's head anonymous.
type RuleSet struct {
	rules     map[string][]*Rule
	heads     []string // insertion order, for deterministic diagnostics
	anonymous map[string]bool
	serial    int
}

// NewRuleSet creates an empty rule set.
func NewRuleSet() *RuleSet {
	return &RuleSet{
		rules:     make(map[string][]*Rule),
		anonymous: make(map[string]bool),
	}
}

// Add appends rule to the rule set, assigning it a 1-based Priority among
// the rules already registered for its head and a Serial unique within this
// rule set, used to order chart items deterministically in diagnostics.
func (rs *RuleSet) Add(rule *Rule) *Rule {
	if _, ok := rs.rules[rule.Head]; !ok {
		rs.heads = append(rs.heads, rule.Head)
	}
	rule.Priority = len(rs.rules[rule.Head]) + 1
	rs.serial++
	rule.Serial = rs.serial
	rs.rules[rule.Head] = append(rs.rules[rule.Head], rule)
	tracer().Debugf("rule #%d: %s", rule.Serial, rule)
	return rule
}

// Get returns the ordered list of rules defining head, or nil if head is
// undefined.
func (rs *RuleSet) Get(head string) []*Rule {
	return rs.rules[head]
}

// Heads returns the registered head names in insertion order.
func (rs *RuleSet) Heads() []string {
	return rs.heads
}

// MarkAnonymous marks head as anonymous: an implementation detail of the
// grammar (e.g. a generated helper rule) that error reporting should
// unfold rather than name directly. Defaults to false for any head not
// marked.
func (rs *RuleSet) MarkAnonymous(head string) {
	rs.anonymous[head] = true
}

// IsAnonymous reports whether head was marked anonymous.
func (rs *RuleSet) IsAnonymous(head string) bool {
	return rs.anonymous[head]
}
