package parseforest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func isTok(want string) func(interface{}) bool {
	return func(tok interface{}) bool {
		s, ok := tok.(string)
		return ok && s == want
	}
}

func TestRuleSetAssignsPriorityAndSerial(t *testing.T) {
	rs := NewRuleSet()
	r1 := rs.Add(NewRule("top", NewTerminal(isTok("a"))))
	r2 := rs.Add(NewRule("top", NewTerminal(isTok("b"))))
	r3 := rs.Add(NewRule("other", NewTerminal(isTok("c"))))

	assert.Equal(t, 1, r1.Priority)
	assert.Equal(t, 2, r2.Priority)
	assert.Equal(t, 1, r3.Priority)
	assert.Less(t, r1.Serial, r2.Serial)
	assert.Less(t, r2.Serial, r3.Serial)
	assert.Equal(t, []string{"top", "other"}, rs.Heads())
	assert.Equal(t, []*Rule{r1, r2}, rs.Get("top"))
}

func TestRuleSetAnonymousHeads(t *testing.T) {
	rs := NewRuleSet()
	rs.Add(NewRule("helper_0", NewTerminal(isTok("x"))))
	assert.False(t, rs.IsAnonymous("helper_0"))
	rs.MarkAnonymous("helper_0")
	assert.True(t, rs.IsAnonymous("helper_0"))
	assert.False(t, rs.IsAnonymous("top"))
}

func TestSymbolOptionMutualExclusion(t *testing.T) {
	assert.Panics(t, func() {
		NewTerminal(isTok("a"), WithStar(), WithOptional())
	})
	assert.Panics(t, func() {
		NewTerminal(isTok("a"), WithGreedy(), WithLazy())
	})
	assert.Panics(t, func() {
		NewNonTerminal("top", WithPreferEarly(), WithPreferLate())
	})
	assert.Panics(t, func() {
		NewTerminal(isTok("a"), WithGreedy())
	})
	assert.Panics(t, func() {
		NewTerminal(isTok("a"), WithPreferEarly())
	})
	assert.NotPanics(t, func() {
		NewNonTerminal("top", WithPreferEarly())
	})
}

func TestSymbolQuantifierDerivation(t *testing.T) {
	star := NewTerminal(isTok("a"), WithStar())
	assert.True(t, star.Multiple())
	assert.Equal(t, 0, star.MinOccurs())
	assert.False(t, star.Optional())

	plus := NewTerminal(isTok("a"), WithPlus())
	assert.True(t, plus.Multiple())
	assert.Equal(t, 1, plus.MinOccurs())

	opt := NewTerminal(isTok("a"), WithOptional())
	assert.True(t, opt.Optional())
	assert.False(t, opt.Multiple())
}

func TestPartialItemExtendAndSkip(t *testing.T) {
	rs := NewRuleSet()
	rule := rs.Add(NewRule("top", NewTerminal(isTok("a"), WithOptional())))

	init := NewInitialItem(rule, 0)
	assert.False(t, init.IsComplete())
	assert.Equal(t, 0, len(init.Sources))

	skipped, ok := init.Skip()
	assert.True(t, ok)
	assert.True(t, skipped.IsComplete())
	assert.Equal(t, uint64(0), skipped.End)

	extended := init.Extend(FromToken("a"), 1)
	assert.True(t, extended.IsComplete())
	assert.Equal(t, uint64(1), extended.End)
	assert.Equal(t, 1, len(extended.Sources))
}

func TestPartialItemKeyCanonicalizesIdentity(t *testing.T) {
	rs := NewRuleSet()
	rule := rs.Add(NewRule("top", NewTerminal(isTok("a"))))
	a := NewInitialItem(rule, 3)
	b := NewInitialItem(rule, 3)
	assert.Equal(t, a.Key(), b.Key())

	c := NewInitialItem(rule, 4)
	assert.NotEqual(t, a.Key(), c.Key())
}

func TestPartialItemMergeSourcesDeduplicates(t *testing.T) {
	rs := NewRuleSet()
	rule := rs.Add(NewRule("top", NewTerminal(isTok("a"))))
	pred := NewInitialItem(rule, 0)
	item := pred.Extend(FromToken("a"), 1)

	changed := item.MergeSources([]Source{{Pred: pred, Contribution: FromToken("a")}})
	assert.False(t, changed, "identical source should not be re-added")

	other := NewInitialItem(rule, 0)
	changed = item.MergeSources([]Source{{Pred: other, Contribution: FromToken("a")}})
	assert.True(t, changed)
	assert.Equal(t, 2, len(item.Sources))
}
