package chart

import (
	"github.com/emirpasic/gods/sets/treeset"

	pf "github.com/kavanlabs/parseforest"
)

// itemOrder is the comparator used to keep a column's item set in a
// deterministic order for tracing and diagnostics.
func itemOrder(a, b interface{}) int {
	x := a.(*pf.PartialItem)
	y := b.(*pf.PartialItem)
	switch {
	case x.Start != y.Start:
		return int(x.Start) - int(y.Start)
	case x.End != y.End:
		return int(x.End) - int(y.End)
	case x.Dot != y.Dot:
		return x.Dot - y.Dot
	case x.SubState != y.SubState:
		return x.SubState - y.SubState
	case x.Rule != y.Rule:
		return ruleIdentity(x.Rule) - ruleIdentity(y.Rule)
	default:
		return 0
	}
}

// ruleIdentity gives *pf.Rule a total order for tie-breaking within
// itemOrder, using the rule's Serial (assigned once, at RuleSet.Add time).
func ruleIdentity(r *pf.Rule) int {
	return r.Serial
}

// column is the per-token-column worklist and canonicalization set: a map
// from item key to canonical item (for identity and source merging) plus
// an append-only queue driving the inner loop, plus a treeset mirror kept
// only for deterministic dumps.
type column struct {
	byKey  map[pf.ItemKey]*pf.PartialItem
	queue  []*pf.PartialItem
	cursor int
	order  *treeset.Set
}

func newColumn() *column {
	return &column{
		byKey: make(map[pf.ItemKey]*pf.PartialItem),
		order: treeset.NewWith(itemOrder),
	}
}

// canonicalize interns candidate into the column. If an item with the same
// key already exists, candidate's sources are merged into it and the
// existing canonical item is returned with added=false. Otherwise candidate
// itself becomes canonical, added=true, and it is appended to the worklist.
// Canonicalization is what lets a late completion extend every interested
// waiter exactly once: completion edges reference predecessors by identity.
func (c *column) canonicalize(candidate *pf.PartialItem) (canon *pf.PartialItem, added bool) {
	k := candidate.Key()
	if existing, ok := c.byKey[k]; ok {
		existing.MergeSources(candidate.Sources)
		return existing, false
	}
	c.byKey[k] = candidate
	c.queue = append(c.queue, candidate)
	c.order.Add(candidate)
	return candidate, true
}

// next pops the next not-yet-processed item off the worklist, returning
// false once the column is exhausted. New items discovered while
// processing are appended to the same queue and will be visited before
// next returns false.
func (c *column) next() (*pf.PartialItem, bool) {
	if c.cursor >= len(c.queue) {
		return nil, false
	}
	item := c.queue[c.cursor]
	c.cursor++
	return item, true
}

func (c *column) items() []*pf.PartialItem {
	vals := c.order.Values()
	out := make([]*pf.PartialItem, len(vals))
	for i, v := range vals {
		out[i] = v.(*pf.PartialItem)
	}
	return out
}
