// Package report summarizes a failed parse's chart state into the
// human-friendly fields NoParseError carries: the terminals a failing
// column was waiting on, and the set of expectations reached by walking
// back from the blocked items through their predicting parents, unfolding
// the synthetic wrapper rule and any anonymous (implementation-detail)
// rule heads.
package report

import (
	"sort"

	pf "github.com/kavanlabs/parseforest"
)

// Terminals returns the distinct terminal symbols the items in waiting were
// about to scan, in first-seen order. waiting is a chart column's
// per-position list of items whose next symbol is a terminal.
func Terminals(waiting []*pf.PartialItem) []pf.Symbol {
	seen := make(map[pf.Symbol]bool, len(waiting))
	out := make([]pf.Symbol, 0, len(waiting))
	for _, it := range waiting {
		s := it.NextSymbol()
		if s == nil || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// Expected summarizes the blocked items of a failing column into a sorted,
// de-duplicated list of human-readable expectations. It works in two
// phases. First it walks upward: a blocked item that is still initial (no
// progress at all) says nothing useful on its own, so its predicting
// parents in pendingByHead are visited instead, recording the child under
// each parent; items that have made progress, and items of a transparent
// rule, stop the walk as "exit" points. Then it unfolds downward: an exit
// whose next symbol refers to a transparent rule or an anonymous head is
// replaced by the children recorded under it, so that the report names
// grammar-level expectations rather than wrapper or helper rules.
func Expected(rs *pf.RuleSet, waiting []*pf.PartialItem, pendingByHead map[string][]*pf.PartialItem) []string {
	visited := make(map[*pf.PartialItem]bool)
	children := make(map[*pf.PartialItem][]*pf.PartialItem)
	var exits []*pf.PartialItem

	open := append([]*pf.PartialItem(nil), waiting...)
	for len(open) > 0 {
		item := open[len(open)-1]
		open = open[:len(open)-1]
		if visited[item] {
			continue
		}
		visited[item] = true
		switch {
		case item.Rule.Transparent:
			exits = append(exits, item)
		case item.Dot == 0 && item.SubState == 0:
			for _, parent := range pendingByHead[item.Rule.Head] {
				children[parent] = append(children[parent], item)
				open = append(open, parent)
			}
		default:
			exits = append(exits, item)
		}
	}

	seen := make(map[string]bool)
	var out []string
	for len(exits) > 0 {
		exit := exits[len(exits)-1]
		exits = exits[:len(exits)-1]
		s := exit.NextSymbol()
		if s == nil {
			continue
		}
		if !s.IsTerminal() && (exit.Rule.Transparent || rs.IsAnonymous(s.Head())) {
			exits = append(exits, children[exit]...)
			continue
		}
		if name := s.String(); !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
