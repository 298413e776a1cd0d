package forest

import pf "github.com/kavanlabs/parseforest"

// detectCycles runs Tarjan's strongly-connected-components algorithm over
// nodes (edges: an item to its Sources predecessors and inner-contribution
// items), using an explicit work stack instead of recursion. Any SCC
// of size greater than one is an infinite derivation; a size-one SCC is
// only infinite if the item has a self-edge.
func (f *ParseForest) detectCycles(nodes []*pf.PartialItem) error {
	index := make(map[*pf.PartialItem]int, len(nodes))
	low := make(map[*pf.PartialItem]int, len(nodes))
	onStack := make(map[*pf.PartialItem]bool, len(nodes))
	var tstack []*pf.PartialItem
	counter := 0
	var sccs [][]*pf.PartialItem

	type tframe struct {
		item *pf.PartialItem
		kids []*pf.PartialItem
		ci   int
	}

	for _, root := range nodes {
		if _, ok := index[root]; ok {
			continue
		}
		var call []*tframe
		push := func(n *pf.PartialItem) {
			index[n] = counter
			low[n] = counter
			counter++
			tstack = append(tstack, n)
			onStack[n] = true
			call = append(call, &tframe{item: n, kids: children(n)})
		}
		push(root)
		for len(call) > 0 {
			top := call[len(call)-1]
			if top.ci < len(top.kids) {
				w := top.kids[top.ci]
				top.ci++
				if _, ok := index[w]; !ok {
					push(w)
					continue
				}
				if onStack[w] && index[w] < low[top.item] {
					low[top.item] = index[w]
				}
				continue
			}
			call = call[:len(call)-1]
			if len(call) > 0 {
				parent := call[len(call)-1]
				if low[top.item] < low[parent.item] {
					low[parent.item] = low[top.item]
				}
			}
			if low[top.item] == index[top.item] {
				var scc []*pf.PartialItem
				for {
					n := tstack[len(tstack)-1]
					tstack = tstack[:len(tstack)-1]
					onStack[n] = false
					scc = append(scc, n)
					if n == top.item {
						break
					}
				}
				sccs = append(sccs, scc)
			}
		}
	}

	for _, scc := range sccs {
		if len(scc) > 1 {
			return cycleError(scc)
		}
		n := scc[0]
		for _, k := range children(n) {
			if k == n {
				return cycleError(scc)
			}
		}
	}
	return nil
}

// children returns n's Sources predecessors and inner-contribution items,
// the edge set detectCycles traverses.
func children(n *pf.PartialItem) []*pf.PartialItem {
	out := make([]*pf.PartialItem, 0, len(n.Sources)*2)
	for _, src := range n.Sources {
		if src.Pred != nil {
			out = append(out, src.Pred)
		}
		if src.Contribution.Item != nil {
			out = append(out, src.Contribution.Item)
		}
	}
	return out
}

func cycleError(scc []*pf.PartialItem) error {
	start, end := scc[0].Start, scc[0].End
	for _, n := range scc {
		if n.Start < start {
			start = n.Start
		}
		if n.End > end {
			end = n.End
		}
	}
	return pf.NewInfiniteParseError("infinite derivation", start, end)
}
