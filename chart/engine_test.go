package chart

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"

	pf "github.com/kavanlabs/parseforest"
)

// setupTest wires tracing into *testing.T so Debugf output from the
// engine surfaces as test log lines instead of going nowhere.
func setupTest(t *testing.T) func() {
	return gotestingadapter.QuickConfig(t, "parseforest.chart")
}

func tok(s string) func(interface{}) bool {
	return func(v interface{}) bool {
		x, ok := v.(string)
		return ok && x == s
	}
}

func toks(s ...string) []interface{} {
	out := make([]interface{}, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

// TestSingleTerminalAccepts: the smallest possible grammar, top -> 'a'.
func TestSingleTerminalAccepts(t *testing.T) {
	defer setupTest(t)()
	rs := pf.NewRuleSet()
	rs.Add(pf.NewRule("top", pf.NewTerminal(tok("a"))))

	root, err := Run(rs, "top", toks("a"))
	assert.NoError(t, err)
	assert.NotNil(t, root)
	assert.True(t, root.IsComplete())
	assert.Equal(t, uint64(0), root.Start)
	assert.Equal(t, uint64(1), root.End)
}

// TestSingleTerminalRejects: input "b" against top -> 'a' raises
// NoParseError encountering 'b'. The expected set must name the terminal
// 'a' itself, not the start head or the synthetic wrapper: the report walks
// up from the blocked items and back down through the wrapper.
func TestSingleTerminalRejects(t *testing.T) {
	defer setupTest(t)()
	rs := pf.NewRuleSet()
	rs.Add(pf.NewRule("top", pf.NewTerminal(tok("a"), pf.WithName("a"))))

	_, err := Run(rs, "top", toks("b"))
	assert.Error(t, err)
	var noParse *pf.NoParseError
	assert.ErrorAs(t, err, &noParse)
	assert.Equal(t, "b", noParse.Encountered)
	assert.Len(t, noParse.Terminals, 1)
	assert.Equal(t, []string{"a"}, noParse.Expected)
}

// TestNoParseReportsNonTerminalExpectation: when the failure sits below a
// rule that has already made progress, the progressed rule's next
// non-terminal is the right level of explanation, not the terminals
// below it.
func TestNoParseReportsNonTerminalExpectation(t *testing.T) {
	defer setupTest(t)()
	rs := pf.NewRuleSet()
	rs.Add(pf.NewRule("sum",
		pf.NewTerminal(tok("b"), pf.WithName("b")),
		pf.NewNonTerminal("expr"),
	))
	rs.Add(pf.NewRule("expr", pf.NewTerminal(tok("a"), pf.WithName("a"))))

	_, err := Run(rs, "sum", toks("b", "c"))
	assert.Error(t, err)
	var noParse *pf.NoParseError
	assert.ErrorAs(t, err, &noParse)
	assert.Equal(t, "c", noParse.Encountered)
	assert.Equal(t, []string{"expr"}, noParse.Expected)
}

// TestEpsilonCompletesInPredictionColumn exercises the nullable-completion
// problem: a rule matching the empty string must be available to
// predictions made later in the same column.
func TestEpsilonCompletesInPredictionColumn(t *testing.T) {
	defer setupTest(t)()
	rs := pf.NewRuleSet()
	rs.Add(pf.NewRule("top", pf.NewNonTerminal("maybe"), pf.NewTerminal(tok("a"))))
	rs.Add(pf.NewRule("maybe")) // ε

	root, err := Run(rs, "top", toks("a"))
	assert.NoError(t, err)
	assert.NotNil(t, root)
	assert.True(t, root.IsComplete())
}

// TestAmbiguousLeftRightRecursion: top -> top top | 'a' on "a a a" must
// parse. The two distinct derivations are checked in the build package
// tests; here we only assert the chart itself accepts the input.
func TestAmbiguousLeftRightRecursion(t *testing.T) {
	defer setupTest(t)()
	rs := pf.NewRuleSet()
	rs.Add(pf.NewRule("top", pf.NewNonTerminal("top"), pf.NewNonTerminal("top")))
	rs.Add(pf.NewRule("top", pf.NewTerminal(tok("a"))))

	root, err := Run(rs, "top", toks("a", "a", "a"))
	assert.NoError(t, err)
	assert.NotNil(t, root)
}

// TestStarQuantifierMatchesZeroOrMore exercises the '*' extend-in-place /
// skip transitions directly, without a grammar rewrite.
func TestStarQuantifierMatchesZeroOrMore(t *testing.T) {
	defer setupTest(t)()
	rs := pf.NewRuleSet()
	rs.Add(pf.NewRule("top", pf.NewTerminal(tok("a"), pf.WithStar())))

	root, err := Run(rs, "top", toks("a", "a", "a"))
	assert.NoError(t, err)
	assert.NotNil(t, root)
	assert.True(t, root.IsComplete())

	rootEmpty, err := Run(rs, "top", toks())
	assert.NoError(t, err)
	assert.NotNil(t, rootEmpty)
}

// TestFailIfEmptyDefaultsTrue: an empty token sequence against a grammar
// with no empty derivation raises NoParseError unless
// WithFailIfEmpty(false) is passed.
func TestFailIfEmptyDefaultsTrue(t *testing.T) {
	defer setupTest(t)()
	rs := pf.NewRuleSet()
	rs.Add(pf.NewRule("top", pf.NewTerminal(tok("a"))))

	_, err := Run(rs, "top", toks())
	assert.Error(t, err)

	root, err := Run(rs, "top", toks(), WithFailIfEmpty(false))
	assert.NoError(t, err)
	assert.Nil(t, root)
}
