package build

import (
	"math/big"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"

	pf "github.com/kavanlabs/parseforest"
	"github.com/kavanlabs/parseforest/chart"
)

func setupTest(t *testing.T) func() {
	return gotestingadapter.QuickConfig(t, "parseforest.build")
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

// TestCountAmbiguousGrammar: top -> top top | 'a' on three tokens has
// exactly two distinct derivations, the two ways to parenthesize three
// leaves under a binary rule.
func TestCountAmbiguousGrammar(t *testing.T) {
	defer setupTest(t)()
	rs := pf.NewRuleSet()
	rs.Add(pf.NewRule("top", pf.NewNonTerminal("top"), pf.NewNonTerminal("top")))
	rs.Add(pf.NewRule("top", pf.NewTerminal(tok("a"))))

	f, err := chart.Parse(rs, "top", toks("a", "a", "a"))
	assert.NoError(t, err)

	n, err := Count(f)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(2), n)
}

// TestCountUnambiguousGrammar is the degenerate case: a grammar with only
// one derivation must report a count of exactly 1.
func TestCountUnambiguousGrammar(t *testing.T) {
	defer setupTest(t)()
	rs := pf.NewRuleSet()
	rs.Add(pf.NewRule("top", pf.NewTerminal(tok("a"))))

	f, err := chart.Parse(rs, "top", toks("a"))
	assert.NoError(t, err)

	n, err := Count(f)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(1), n)
}

// TestSingleRejectsAmbiguousGrammar: Single must refuse to silently pick
// a derivation from an ambiguous forest.
func TestSingleRejectsAmbiguousGrammar(t *testing.T) {
	defer setupTest(t)()
	rs := pf.NewRuleSet()
	rs.Add(pf.NewRule("top", pf.NewNonTerminal("top"), pf.NewNonTerminal("top")))
	rs.Add(pf.NewRule("top", pf.NewTerminal(tok("a"))))

	f, err := chart.Parse(rs, "top", toks("a", "a", "a"))
	assert.NoError(t, err)

	_, err = SingleTree(f)
	assert.Error(t, err)
	var ambiguous *pf.AmbiguousParseError
	assert.ErrorAs(t, err, &ambiguous)
}

// TestSingleResolvesUnambiguousGrammar confirms the non-erroring path:
// exactly one derivation builds a concrete Tree, not an error.
func TestSingleResolvesUnambiguousGrammar(t *testing.T) {
	defer setupTest(t)()
	rs := pf.NewRuleSet()
	rs.Add(pf.NewRule("top", pf.NewTerminal(tok("a"))))

	f, err := chart.Parse(rs, "top", toks("a"))
	assert.NoError(t, err)

	tree, err := SingleTree(f)
	assert.NoError(t, err)
	assert.NotNil(t, tree)
	assert.Equal(t, "a", tree.Children[0])
}

// TestAllMatchesCount confirms List enumerates exactly as many candidate
// trees as Count reports.
func TestAllMatchesCount(t *testing.T) {
	defer setupTest(t)()
	rs := pf.NewRuleSet()
	rs.Add(pf.NewRule("top", pf.NewNonTerminal("top"), pf.NewNonTerminal("top")))
	rs.Add(pf.NewRule("top", pf.NewTerminal(tok("a"))))

	f, err := chart.Parse(rs, "top", toks("a", "a", "a", "a"))
	assert.NoError(t, err)

	n, err := Count(f)
	assert.NoError(t, err)

	trees, err := AllTrees(f)
	assert.NoError(t, err)
	assert.Equal(t, n, big.NewInt(int64(len(trees))))
}

// TestIteratorMatchesCount confirms the lazy Iterator yields the same
// number of candidates as Count and List, without materializing them all
// up front.
func TestIteratorMatchesCount(t *testing.T) {
	defer setupTest(t)()
	rs := pf.NewRuleSet()
	rs.Add(pf.NewRule("top", pf.NewNonTerminal("top"), pf.NewNonTerminal("top")))
	rs.Add(pf.NewRule("top", pf.NewTerminal(tok("a"))))

	f, err := chart.Parse(rs, "top", toks("a", "a", "a"))
	assert.NoError(t, err)

	n, err := Count(f)
	assert.NoError(t, err)

	seq, err := IterateTrees(f)
	assert.NoError(t, err)
	count := 0
	for {
		_, rest, ok := seq.Next()
		if !ok {
			break
		}
		count++
		seq = rest
	}
	assert.Equal(t, n, big.NewInt(int64(count)))
}

// TestGreedyQuantifierResolvesAmbiguity: top -> 'a'? 'a'* on "a a" is
// ambiguous in the plain case (the first 'a'
// could be consumed by either symbol) but resolves to exactly one reading
// once the optional symbol is marked greedy.
func TestGreedyQuantifierResolvesAmbiguity(t *testing.T) {
	defer setupTest(t)()
	plain := pf.NewRuleSet()
	plain.Add(pf.NewRule("top",
		pf.NewTerminal(tok("a"), pf.WithOptional()),
		pf.NewTerminal(tok("a"), pf.WithStar()),
	))
	f, err := chart.Parse(plain, "top", toks("a", "a"))
	assert.NoError(t, err)
	_, err = SingleTree(f)
	assert.Error(t, err)

	greedy := pf.NewRuleSet()
	greedy.Add(pf.NewRule("top",
		pf.NewTerminal(tok("a"), pf.WithOptional(), pf.WithGreedy()),
		pf.NewTerminal(tok("a"), pf.WithStar()),
	))
	fg, err := chart.Parse(greedy, "top", toks("a", "a"))
	assert.NoError(t, err)
	tree, err := SingleTree(fg)
	assert.NoError(t, err)
	assert.NotNil(t, tree)
}

// TestPreferEarlyResolvesAmbiguity: two rules compete for the same
// non-terminal span, and a prefer-early hint on the referencing symbol
// keeps only the first-registered (lowest-priority-number) rule's
// reading.
func TestPreferEarlyResolvesAmbiguity(t *testing.T) {
	defer setupTest(t)()
	plain := pf.NewRuleSet()
	plain.Add(pf.NewRule("top", pf.NewNonTerminal("x")))
	plain.Add(pf.NewRule("x", pf.NewTerminal(tok("a"))))
	plain.Add(pf.NewRule("x", pf.NewTerminal(tok("a"))))

	f, err := chart.Parse(plain, "top", toks("a"))
	assert.NoError(t, err)
	n, err := Count(f)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(2), n)

	early := pf.NewRuleSet()
	early.Add(pf.NewRule("top", pf.NewNonTerminal("x", pf.WithPreferEarly())))
	r1 := early.Add(pf.NewRule("x", pf.NewTerminal(tok("a"))))
	early.Add(pf.NewRule("x", pf.NewTerminal(tok("a"))))

	fe, err := chart.Parse(early, "top", toks("a"))
	assert.NoError(t, err)
	tree, err := SingleTree(fe)
	assert.NoError(t, err)
	assert.NotNil(t, tree)
	inner := tree.Children[0].(*Tree)
	assert.Equal(t, r1, inner.Rule)
}

// TestPreferLateResolvesAmbiguity is the mirror case: prefer_late keeps the
// last-registered rule's reading.
func TestPreferLateResolvesAmbiguity(t *testing.T) {
	defer setupTest(t)()
	late := pf.NewRuleSet()
	late.Add(pf.NewRule("top", pf.NewNonTerminal("x", pf.WithPreferLate())))
	late.Add(pf.NewRule("x", pf.NewTerminal(tok("a"))))
	r2 := late.Add(pf.NewRule("x", pf.NewTerminal(tok("a"))))

	f, err := chart.Parse(late, "top", toks("a"))
	assert.NoError(t, err)
	tree, err := SingleTree(f)
	assert.NoError(t, err)
	inner := tree.Children[0].(*Tree)
	assert.Equal(t, r2, inner.Rule)
}

// TestPenaltyTrimmingResolvesAmbiguity: a penalized recursive rule loses
// to the direct derivation, so Single succeeds instead of raising
// AmbiguousParseError.
func TestPenaltyTrimmingResolvesAmbiguity(t *testing.T) {
	defer setupTest(t)()
	rs := pf.NewRuleSet()
	rs.Add(pf.NewRule("top", pf.NewNonTerminal("top")).Apply(pf.WithRulePenalty(1)))
	rs.Add(pf.NewRule("top", pf.NewTerminal(tok("a"))))

	f, err := chart.Parse(rs, "top", toks("a"))
	assert.NoError(t, err)

	tree, err := SingleTree(f)
	assert.NoError(t, err)
	assert.NotNil(t, tree)
	assert.Equal(t, "a", tree.Children[0])
}

// TestUnparseRoundTrips: unparsing a parsed forest back to its token
// sequence reproduces the original input.
func TestUnparseRoundTrips(t *testing.T) {
	defer setupTest(t)()
	rs := pf.NewRuleSet()
	rs.Add(pf.NewRule("top", pf.NewTerminal(tok("a")), pf.NewTerminal(tok("b"), pf.WithStar())))

	input := toks("a", "b", "b")
	f, err := chart.Parse(rs, "top", input)
	assert.NoError(t, err)

	out, err := Unparse(f)
	assert.NoError(t, err)
	assert.Equal(t, input, out)
}
