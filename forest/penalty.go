package forest

import (
	"github.com/emirpasic/gods/stacks/arraystack"

	pf "github.com/kavanlabs/parseforest"
)

// trimPenalties: a post-order DFS (explicit stack) assigns every item the
// minimum, over its source pairs, of the summed penalty of the pair;
// source pairs whose penalty exceeds that minimum are removed. A
// still-open back-edge (an item currently being visited further up the
// same DFS branch) contributes 0; under cycles the result is an
// approximation, not a shortest path, and callers rely on exactly this
// behavior.
func (f *ParseForest) trimPenalties(nodes []*pf.PartialItem) {
	const (
		white = iota
		gray
		black
	)
	color := make(map[*pf.PartialItem]int, len(nodes))
	penalty := make(map[*pf.PartialItem]int, len(nodes))

	type frame struct {
		item    *pf.PartialItem
		entered bool
	}
	var seed []*pf.PartialItem

	for _, root := range nodes {
		if color[root] != white {
			continue
		}
		stack := arraystack.New()
		stack.Push(&frame{item: root})
		for !stack.Empty() {
			v, _ := stack.Peek()
			top := v.(*frame)
			if !top.entered {
				if color[top.item] != white {
					stack.Pop()
					continue
				}
				top.entered = true
				color[top.item] = gray
				for _, src := range top.item.Sources {
					if src.Pred != nil && color[src.Pred] == white {
						stack.Push(&frame{item: src.Pred})
					}
					if src.Contribution.Item != nil && color[src.Contribution.Item] == white {
						stack.Push(&frame{item: src.Contribution.Item})
					}
				}
				continue
			}
			stack.Pop()
			trimmed := trimItemPenalty(top.item, penalty, color, black)
			if trimmed {
				seed = append(seed, top.item)
			}
			color[top.item] = black
		}
	}
	if len(seed) > 0 {
		cascadeEmptySources(seed, f.dests)
	}
}

// trimItemPenalty computes item's minimum source-pair penalty, stores it in
// penalty, removes any source pair whose own penalty exceeds that minimum,
// and reports whether item's Sources became empty as a result.
func trimItemPenalty(item *pf.PartialItem, penalty map[*pf.PartialItem]int, color map[*pf.PartialItem]int, black int) bool {
	if len(item.Sources) == 0 {
		penalty[item] = item.Rule.Penalty
		return false
	}
	vals := make([]int, len(item.Sources))
	min, max := 0, 0
	for i, src := range item.Sources {
		v := sourcePenalty(src.Pred, penalty, color, black) + contributionPenalty(src.Contribution, penalty, color, black)
		vals[i] = v
		if i == 0 || v < min {
			min = v
		}
		if i == 0 || v > max {
			max = v
		}
	}
	penalty[item] = min
	if min == max {
		return false
	}
	before := len(item.Sources)
	item.Sources = filterSourcesByIndex(item.Sources, vals, min)
	return before > 0 && len(item.Sources) == 0
}

func sourcePenalty(pred *pf.PartialItem, penalty map[*pf.PartialItem]int, color map[*pf.PartialItem]int, black int) int {
	if pred == nil || color[pred] != black {
		return 0
	}
	return penalty[pred]
}

func contributionPenalty(c pf.Contribution, penalty map[*pf.PartialItem]int, color map[*pf.PartialItem]int, black int) int {
	if c.Item == nil {
		return 0
	}
	return sourcePenalty(c.Item, penalty, color, black)
}

func filterSourcesByIndex(sources []pf.Source, vals []int, min int) []pf.Source {
	out := sources[:0:0]
	for i, s := range sources {
		if vals[i] <= min {
			out = append(out, s)
		}
	}
	return out
}
