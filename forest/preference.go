package forest

import pf "github.com/kavanlabs/parseforest"

// trimPreferences: greedy/lazy quantifier resolution followed by
// prefer-early/prefer-late rule-priority resolution. Greedy/lazy runs
// first because the quantifier-skip choice sits outside the rule a
// preference selects. Operates on every incomplete item reachable from
// the root; order of traversal does not matter since each item's decision
// depends only on its own outgoing edges.
func (f *ParseForest) trimPreferences(nodes []*pf.PartialItem) {
	var seed []*pf.PartialItem
	for _, item := range nodes {
		if item.IsComplete() {
			continue
		}
		s := item.NextSymbol()
		if s.Greedy() || s.Lazy() {
			trimGreedyLazy(item, s, f.dests, &seed)
		}
		if !s.IsTerminal() && (s.PreferEarly() || s.PreferLate()) {
			trimPreference(item, s, f.dests, &seed)
		}
	}
	if len(seed) > 0 {
		cascadeEmptySources(seed, f.dests)
	}
}

// trimGreedyLazy removes, among item's outgoing edges, the disfavored kind
// (skip for greedy, extend for lazy) when both kinds are present.
func trimGreedyLazy(item *pf.PartialItem, s pf.Symbol, dests map[*pf.PartialItem][]Dest, seed *[]*pf.PartialItem) {
	edges := dests[item]
	var haveSkip, haveExtend bool
	for _, d := range edges {
		if d.Contribution.IsSkip() {
			haveSkip = true
		} else {
			haveExtend = true
		}
	}
	if !haveSkip || !haveExtend {
		return
	}
	dropSkip := s.Greedy()
	for _, d := range edges {
		if d.Contribution.IsSkip() != dropSkip {
			continue
		}
		succ := d.Successor
		before := len(succ.Sources)
		succ.Sources = filterSources(succ.Sources, func(src pf.Source) bool {
			return !(src.Pred == item && src.Contribution.IsSkip() == dropSkip)
		})
		if before > 0 && len(succ.Sources) == 0 {
			*seed = append(*seed, succ)
		}
	}
}

// trimPreference keeps only the outgoing edges whose contributed rule
// priority is the minimum (prefer_early) or maximum (prefer_late) among
// item's distinct successor-rule priorities, when more than one is present.
func trimPreference(item *pf.PartialItem, s pf.Symbol, dests map[*pf.PartialItem][]Dest, seed *[]*pf.PartialItem) {
	edges := dests[item]
	priorities := make(map[int]bool)
	for _, d := range edges {
		if d.Contribution.Item != nil {
			priorities[d.Contribution.Item.Rule.Priority] = true
		}
	}
	if len(priorities) < 2 {
		return
	}
	target := -1
	for p := range priorities {
		if target == -1 {
			target = p
			continue
		}
		if s.PreferEarly() && p < target {
			target = p
		}
		if s.PreferLate() && p > target {
			target = p
		}
	}
	for _, d := range edges {
		if d.Contribution.Item == nil || d.Contribution.Item.Rule.Priority == target {
			continue
		}
		succ := d.Successor
		before := len(succ.Sources)
		succ.Sources = filterSources(succ.Sources, func(src pf.Source) bool {
			return !(src.Pred == item && src.Contribution.Item != nil && src.Contribution.Item.Rule.Priority != target)
		})
		if before > 0 && len(succ.Sources) == 0 {
			*seed = append(*seed, succ)
		}
	}
}
