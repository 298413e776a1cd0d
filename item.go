package parseforest

import "fmt"

// contribKind distinguishes the three ways a PartialItem can have been
// reached: completion of another item, a scanned token, or the skip of an
// optional/quantified symbol that matched zero times.
type contribKind uint8

const (
	contribItem contribKind = iota
	contribToken
	contribSkip
)

// Contribution is one of: another *PartialItem (completion), a raw token
// (scan), or the null marker (skip). Exactly one of Item/Token is
// meaningful, selected by Kind.
type Contribution struct {
	Kind  contribKind
	Item  *PartialItem
	Token interface{}
}

// FromItem wraps a completed PartialItem as a completion contribution.
func FromItem(it *PartialItem) Contribution {
	return Contribution{Kind: contribItem, Item: it}
}

// FromToken wraps a scanned token as a scan contribution.
func FromToken(tok interface{}) Contribution {
	return Contribution{Kind: contribToken, Token: tok}
}

// SkipMarker is the null contribution recorded when an optional or
// quantified symbol is skipped.
func SkipMarker() Contribution {
	return Contribution{Kind: contribSkip}
}

// IsSkip reports whether c is the null (skip) marker.
func (c Contribution) IsSkip() bool {
	return c.Kind == contribSkip
}

func (c Contribution) String() string {
	switch c.Kind {
	case contribItem:
		return c.Item.String()
	case contribToken:
		return fmt.Sprintf("%v", c.Token)
	default:
		return "ø"
	}
}

// Source is one way a PartialItem was reached: a predecessor item plus the
// contribution that advanced it. Sources with a nil Pred never occur in
// practice; an item with no recorded derivation (a freshly predicted,
// never-advanced item) is represented by an empty Sources slice.
type Source struct {
	Pred         *PartialItem
	Contribution Contribution
}

// ItemKey is the canonicalization key: (rule identity, dot
// position, sub-state, start, end). It is comparable and suitable as a map
// key, which is how chart columns intern items.
type ItemKey struct {
	rule  *Rule
	dot   int
	sub   int
	start uint64
	end   uint64
}

// PartialItem is the forest's node type: an Earley item augmented with a
// sub-state counter for quantified symbols, plus the set of ways it was
// derived. All items with equal key are the same object (canonicalization);
// construct them only through RuleSet-independent helpers (initial
// items via NewInitialItem, successors via Extend/Skip) and always route
// them through a chart column's canonicalize step before linking them into
// other items' Sources.
type PartialItem struct {
	Rule     *Rule
	Dot      int
	SubState int
	Start    uint64
	End      uint64
	Sources  []Source

	// handle is an arena-style identity, assigned once at creation. No code
	// reads it; in particular it plays no part in equality (equality is by
	// key, i.e. by Go pointer identity once canonicalized).
	handle uint64
}

var itemHandles uint64

func nextHandle() uint64 {
	itemHandles++
	return itemHandles
}

// NewInitialItem creates a predicted, never-yet-advanced item: dot=0,
// sub-state 0, start=end=pos, and an empty Sources set.
func NewInitialItem(rule *Rule, pos uint64) *PartialItem {
	return &PartialItem{Rule: rule, Dot: 0, SubState: 0, Start: pos, End: pos, handle: nextHandle()}
}

// Key returns the canonicalization key for this item.
func (it *PartialItem) Key() ItemKey {
	return ItemKey{rule: it.Rule, dot: it.Dot, sub: it.SubState, start: it.Start, end: it.End}
}

// IsComplete reports whether the dot has reached the end of the rule's
// right-hand side.
func (it *PartialItem) IsComplete() bool {
	return it.Dot == len(it.Rule.Symbols)
}

// NextSymbol returns the symbol immediately after the dot, or nil if the
// item is complete.
func (it *PartialItem) NextSymbol() Symbol {
	if it.IsComplete() {
		return nil
	}
	return it.Rule.Symbols[it.Dot]
}

// SymbolIndexFor returns the index into Rule.Symbols of the symbol whose
// match or skip produced the transition from pred to it, accounting for
// quantified symbols that extend in place without advancing the dot.
func (it *PartialItem) SymbolIndexFor(pred *PartialItem) int {
	if it.Dot == pred.Dot {
		return it.Dot // quantified extend-in-place
	}
	return it.Dot - 1
}

// Extend produces the successor of it after matching contribution, ending
// at newEnd. If the next symbol is quantified (Multiple), the
// sub-state advances (clamped) and the dot does not move; otherwise the
// dot advances by one and sub-state resets to 0. The returned item is a
// fresh, not-yet-canonicalized object with a single-element Sources set.
func (it *PartialItem) Extend(contribution Contribution, newEnd uint64) *PartialItem {
	s := it.NextSymbol()
	if s == nil {
		panic("parseforest: Extend called on a complete item")
	}
	succ := &PartialItem{Rule: it.Rule, Start: it.Start, End: newEnd, handle: nextHandle()}
	if s.Multiple() {
		sub := it.SubState + 1
		min := s.MinOccurs()
		if min == 0 {
			// '*' clamps to 1 after the first match to stabilize identity.
			sub = 1
		} else if sub > min {
			sub = min
		}
		succ.Dot = it.Dot
		succ.SubState = sub
	} else {
		succ.Dot = it.Dot + 1
		succ.SubState = 0
	}
	succ.Sources = []Source{{Pred: it, Contribution: contribution}}
	return succ
}

// Skip produces the successor of it when the current symbol is skipped
// (matched zero times). Only valid when the next symbol is optional, or
// quantified and already at its minimum occurrence count.
func (it *PartialItem) Skip() (*PartialItem, bool) {
	s := it.NextSymbol()
	if s == nil {
		return nil, false
	}
	if !s.Optional() && !(s.Multiple() && it.SubState >= s.MinOccurs()) {
		return nil, false
	}
	succ := &PartialItem{
		Rule:     it.Rule,
		Dot:      it.Dot + 1,
		SubState: 0,
		Start:    it.Start,
		End:      it.End,
		Sources:  []Source{{Pred: it, Contribution: SkipMarker()}},
		handle:   nextHandle(),
	}
	return succ, true
}

// MergeSources folds extra into it.Sources, deduplicating by
// (Pred, Contribution) identity, and reports whether anything new was
// added. This is the canonicalization merge: a column interning an
// already-present key folds the newcomer's sources into the canonical
// item.
func (it *PartialItem) MergeSources(extra []Source) bool {
	changed := false
	for _, s := range extra {
		found := false
		for _, existing := range it.Sources {
			if existing.Pred == s.Pred && sameContribution(existing.Contribution, s.Contribution) {
				found = true
				break
			}
		}
		if !found {
			it.Sources = append(it.Sources, s)
			changed = true
		}
	}
	return changed
}

func sameContribution(a, b Contribution) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case contribItem:
		return a.Item == b.Item
	case contribToken:
		return a.Token == b.Token
	default:
		return true
	}
}

func (it *PartialItem) String() string {
	parts := make([]string, 0, len(it.Rule.Symbols)+1)
	for i, s := range it.Rule.Symbols {
		if i == it.Dot {
			parts = append(parts, "●")
		}
		parts = append(parts, s.String())
	}
	if it.IsComplete() {
		parts = append(parts, "●")
	}
	dotted := ""
	for i, p := range parts {
		if i > 0 {
			dotted += " "
		}
		dotted += p
	}
	return fmt.Sprintf("[%s -> %s, %d..%d|%d]", it.Rule.Head, dotted, it.Start, it.End, it.SubState)
}
