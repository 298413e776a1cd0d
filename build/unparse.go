package build

import "github.com/kavanlabs/parseforest/forest"

// unparser is the Builder backing Unparse: every value threaded through
// the traversal is the flat []interface{} of tokens scanned so far for
// that slot. skip_optional and end_multiple pass their value through
// unchanged, contributing nothing to the token list, per the unparse
// contract.
type unparser struct{}

func (unparser) StartRule(ctx Context) interface{} { return []interface{}{} }

func (unparser) Terminal(ctx Context, token interface{}) interface{} {
	return []interface{}{token}
}

// Extend concatenates into a fresh slice: the prev value is memoized per
// forest item and may be extended by several successors, so appending in
// place would let their token lists alias each other.
func (unparser) Extend(ctx Context, prev, contribution interface{}) interface{} {
	p := prev.([]interface{})
	c := contribution.([]interface{})
	out := make([]interface{}, 0, len(p)+len(c))
	out = append(out, p...)
	return append(out, c...)
}

func (unparser) SkipOptional(ctx Context, prev interface{}) interface{} { return prev }
func (unparser) BeginMultiple(ctx Context, prev interface{}) interface{} { return prev }
func (unparser) EndMultiple(ctx Context, prev interface{}) interface{} { return prev }
func (unparser) EndRule(ctx Context, prev interface{}) interface{} { return prev }

// MergeVertical/MergeHorizontal pick the first competing candidate:
// unparse only needs a single witness token sequence, not every one.
func (unparser) MergeVertical(ctx Context, values []interface{}) interface{} { return values[0] }
func (unparser) MergeHorizontal(ctx Context, values []interface{}) interface{} { return values[0] }

// Unparse reconstructs a flat token sequence from f by a depth-first walk
// that contributes nothing for skipped optionals or closed quantifier
// slots.
func Unparse(f *forest.ParseForest) ([]interface{}, error) {
	v, err := Walk(f, unparser{})
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return v.([]interface{}), nil
}
