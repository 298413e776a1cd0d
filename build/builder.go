// Package build implements the stackless builder traversal over a
// post-processed forest, plus the four standard builders (Count, Single,
// List, Iterator).
//
// The traversal is a single explicit-stack post-order walk with
// memoization; the Builder contract is a nine-operation capability set
// covering rule assembly, quantifier slots and ambiguity merging.
package build

import (
	"fmt"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/schuko/gconf"

	pf "github.com/kavanlabs/parseforest"
	"github.com/kavanlabs/parseforest/forest"
)

// Context is handed to every Builder operation: the rule being assembled,
// the right-hand-side symbol index the operation concerns, and the span
// the item in progress covers.
type Context struct {
	Rule        *pf.Rule
	SymbolIndex int
	Start, End  uint64
}

// Builder is the nine-operation capability set a traversal drives. Each
// method receives the context of the item/contribution it concerns and
// returns the value the traversal threads through to the item's parent.
type Builder interface {
	StartRule(ctx Context) interface{}
	Terminal(ctx Context, token interface{}) interface{}
	Extend(ctx Context, prev, contribution interface{}) interface{}
	SkipOptional(ctx Context, prev interface{}) interface{}
	BeginMultiple(ctx Context, prev interface{}) interface{}
	EndMultiple(ctx Context, prev interface{}) interface{}
	EndRule(ctx Context, prev interface{}) interface{}
	MergeVertical(ctx Context, values []interface{}) interface{}
	MergeHorizontal(ctx Context, values []interface{}) interface{}
}

// ambiguityPanic is how a Builder (Single, specifically) signals refusal
// to merge without unwinding through every traversal frame by hand; Walk
// is the sole place it is recovered.
type ambiguityPanic struct {
	start, end uint64
	candidates []interface{}
}

// Walk drives b over f's forest with a single stackless post-order DFS
// (explicit work stack, no native recursion), memoizing one output value
// per item so that sharing under ambiguity costs O(nodes), not O(trees).
func Walk(f *forest.ParseForest, b Builder) (v interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			if amb, ok := r.(ambiguityPanic); ok {
				err = pf.NewAmbiguousParseError("ambiguous parse", amb.start, amb.end, amb.candidates)
				return
			}
			panic(r)
		}
	}()

	const (
		white = iota
		gray
		black
	)
	color := make(map[*pf.PartialItem]int)
	memo := make(map[*pf.PartialItem]interface{})

	type frame struct {
		item    *pf.PartialItem
		entered bool
	}
	stack := arraystack.New()
	stack.Push(&frame{item: f.Root})
	tracer().Debugf("builder walk from %s", f.Root)
	for !stack.Empty() {
		v, _ := stack.Peek()
		top := v.(*frame)
		if !top.entered {
			// An item referenced by several parents gets one frame per
			// parent; only the first one drives its computation.
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
		memo[top.item] = computeItemValue(top.item, memo, b)
		color[top.item] = black
	}
	return memo[f.Root], nil
}

// computeItemValue assumes every item item.Sources refers to (by Pred or
// by Contribution.Item) already has a memoized value, and produces item's
// own value by resolving each predecessor group and folding the results.
func computeItemValue(item *pf.PartialItem, memo map[*pf.PartialItem]interface{}, b Builder) interface{} {
	ctx0 := Context{Rule: item.Rule, SymbolIndex: 0, Start: item.Start, End: item.End}
	if len(item.Sources) == 0 {
		if item.Rule.Transparent {
			return nil
		}
		v := b.StartRule(ctx0)
		if item.IsComplete() {
			v = b.EndRule(ctxAt(item, len(item.Rule.Symbols)), v)
		}
		return v
	}

	var preds []*pf.PartialItem
	groups := make(map[*pf.PartialItem][]pf.Source)
	for _, src := range item.Sources {
		if _, ok := groups[src.Pred]; !ok {
			preds = append(preds, src.Pred)
		}
		groups[src.Pred] = append(groups[src.Pred], src)
	}

	results := make([]interface{}, 0, len(preds))
	for _, pred := range preds {
		results = append(results, computeGroupValue(item, pred, groups[pred], memo, b))
	}

	var v interface{}
	if len(results) == 1 {
		v = results[0]
	} else {
		v = b.MergeHorizontal(ctxAt(item, item.Dot), results)
	}
	if item.IsComplete() && !item.Rule.Transparent {
		v = b.EndRule(ctxAt(item, len(item.Rule.Symbols)), v)
	}
	return v
}

// computeGroupValue resolves the contribution group sharing predecessor
// pred into a single value: open a quantifier slot if this is its first
// occurrence, then either close the slot / skip the optional (skip group)
// or fold the contributed values into an extension (value group).
func computeGroupValue(item, pred *pf.PartialItem, group []pf.Source, memo map[*pf.PartialItem]interface{}, b Builder) interface{} {
	symbolIdx := item.SymbolIndexFor(pred)
	ctx := ctxAt(item, symbolIdx)
	value0, ok := memo[pred]
	if !ok && gconf.GetBool("panic-on-forest-inconsistency") {
		panic(fmt.Sprintf("parseforest/build: no memoized value for predecessor %s of %s", pred, item))
	}

	var symbol pf.Symbol
	if symbolIdx >= 0 && symbolIdx < len(item.Rule.Symbols) {
		symbol = item.Rule.Symbols[symbolIdx]
	}
	quantified := symbol != nil && symbol.Multiple()
	if quantified && pred.SubState == 0 {
		value0 = b.BeginMultiple(ctx, value0)
	}

	var skip *pf.Source
	var valueContribs []pf.Source
	for i := range group {
		if group[i].Contribution.IsSkip() {
			skip = &group[i]
		} else {
			valueContribs = append(valueContribs, group[i])
		}
	}

	if skip != nil {
		if quantified {
			return b.EndMultiple(ctx, value0)
		}
		return b.SkipOptional(ctx, value0)
	}

	vals := make([]interface{}, len(valueContribs))
	for i, src := range valueContribs {
		if src.Contribution.Item != nil {
			vals[i] = memo[src.Contribution.Item]
		} else {
			vals[i] = b.Terminal(ctx, src.Contribution.Token)
		}
	}
	merged := vals[0]
	if len(vals) > 1 {
		merged = b.MergeVertical(ctx, vals)
	}
	if item.Rule.Transparent {
		return merged
	}
	return b.Extend(ctx, value0, merged)
}

func ctxAt(item *pf.PartialItem, symbolIndex int) Context {
	return Context{Rule: item.Rule, SymbolIndex: symbolIndex, Start: item.Start, End: item.End}
}
