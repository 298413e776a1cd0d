// Package forest post-processes the chart engine's output into a DAG-safe
// shared packed parse forest: reverse edges for backward traversal, penalty
// and greedy/preference trimming, and infinite-derivation (cycle) rejection.
package forest

import (
	"fmt"

	"github.com/emirpasic/gods/stacks/arraystack"

	pf "github.com/kavanlabs/parseforest"
)

// Dest is a forward (reverse-of-source) edge: from a predecessor item to
// the successor it contributed to, and the contribution that links them.
type Dest struct {
	Successor    *pf.PartialItem
	Contribution pf.Contribution
}

// ParseForest wraps the root (gamma) item produced by a chart run together
// with the reverse-edge index built and maintained by post-processing.
// Before New returns, the forest is mutated in place: penalty-dominated and
// preference-losing source pairs are removed, and a cycle anywhere makes
// New fail instead of returning a forest a builder could loop forever on.
type ParseForest struct {
	Root  *pf.PartialItem
	dests map[*pf.PartialItem][]Dest
}

// New runs the full post-processing pipeline over root and returns the
// resulting forest, or a *parseforest.InfiniteParseError if root's
// derivation contains a cycle. Pass order is fixed: reverse edges, penalty
// trimming, preference trimming, cycle detection. Penalty trimming runs
// before preference trimming; swapping them changes which derivations
// survive, so the order is part of the contract.
func New(root *pf.PartialItem) (*ParseForest, error) {
	f := &ParseForest{Root: root, dests: make(map[*pf.PartialItem][]Dest)}
	nodes := f.closure()
	f.rebuildDests(nodes)
	tracer().Debugf("forest: %d reachable items", len(nodes))
	f.trimPenalties(nodes)
	// A trimming pass can disconnect whole sub-derivations from the root;
	// the closure is recomputed so the following passes never judge items
	// that are no longer part of any surviving derivation.
	nodes = f.closure()
	f.rebuildDests(nodes)
	tracer().Debugf("forest: %d items survive penalty trimming", len(nodes))
	f.trimPreferences(nodes)
	nodes = f.closure()
	f.rebuildDests(nodes)
	tracer().Debugf("forest: %d items survive preference trimming", len(nodes))
	if err := f.detectCycles(nodes); err != nil {
		tracer().Infof("forest rejected: %v", err)
		return nil, err
	}
	return f, nil
}

// Dests returns item's forward edges: the (successor, contribution) pairs
// for which item is the recorded predecessor or inner contribution.
func (f *ParseForest) Dests(item *pf.PartialItem) []Dest {
	return f.dests[item]
}

// InternalNodeCount returns the number of distinct items reachable from the
// root, i.e. the shared DAG's node count (as opposed to the, generally far
// larger, number of distinct derivation trees it represents).
func (f *ParseForest) InternalNodeCount() int {
	return len(f.closure())
}

// closure walks every item reachable from Root via Sources (predecessor and
// inner-contribution edges), using an explicit stack rather than recursion
// so that deeply recursive forests cannot exhaust the host stack.
func (f *ParseForest) closure() []*pf.PartialItem {
	seen := make(map[*pf.PartialItem]bool)
	stack := arraystack.New()
	stack.Push(f.Root)
	var nodes []*pf.PartialItem
	for !stack.Empty() {
		v, _ := stack.Pop()
		n := v.(*pf.PartialItem)
		if seen[n] {
			continue
		}
		seen[n] = true
		nodes = append(nodes, n)
		for _, src := range n.Sources {
			if src.Pred != nil && !seen[src.Pred] {
				stack.Push(src.Pred)
			}
			if src.Contribution.Item != nil && !seen[src.Contribution.Item] {
				stack.Push(src.Contribution.Item)
			}
		}
	}
	return nodes
}

// rebuildDests recomputes f.dests from scratch over nodes' current Sources.
// Called again after every trimming pass so dests stays in lockstep with
// whatever Sources mutations that pass made.
func (f *ParseForest) rebuildDests(nodes []*pf.PartialItem) {
	dests := make(map[*pf.PartialItem][]Dest, len(nodes))
	for _, n := range nodes {
		for _, src := range n.Sources {
			if src.Pred != nil {
				dests[src.Pred] = append(dests[src.Pred], Dest{Successor: n, Contribution: src.Contribution})
			}
			if src.Contribution.Item != nil {
				dests[src.Contribution.Item] = append(dests[src.Contribution.Item], Dest{Successor: n, Contribution: src.Contribution})
			}
		}
	}
	f.dests = dests
}

// cascadeEmptySources removes, transitively, any source pair that refers
// to an item in seed: items a trimming pass has just fully disqualified
// can no longer justify anything they fed into. seed must only contain items
// that held at least one source before the triggering pass ran; an
// initial item's permanently-empty Sources is not a trimming casualty and
// must never be seeded here.
func cascadeEmptySources(seed []*pf.PartialItem, dests map[*pf.PartialItem][]Dest) {
	empty := arraystack.New()
	for _, n := range seed {
		empty.Push(n)
	}
	for !empty.Empty() {
		v, _ := empty.Pop()
		n := v.(*pf.PartialItem)
		for _, d := range dests[n] {
			succ := d.Successor
			before := len(succ.Sources)
			if before == 0 {
				continue
			}
			succ.Sources = filterSources(succ.Sources, func(s pf.Source) bool {
				return s.Pred != n && s.Contribution.Item != n
			})
			if len(succ.Sources) == 0 {
				empty.Push(succ)
			}
		}
	}
}

func filterSources(sources []pf.Source, keep func(pf.Source) bool) []pf.Source {
	out := sources[:0:0]
	for _, s := range sources {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

func (f *ParseForest) String() string {
	return fmt.Sprintf("ParseForest[root=%s, nodes=%d]", f.Root, f.InternalNodeCount())
}
