package build

// List wraps another builder and threads a slice of candidate values
// through every slot instead of one: extend is the Cartesian product of
// the two incoming candidate sets, and the two merge operations
// concatenate. Every other Builder method is driven through Inner once per
// candidate, so List can wrap any builder producing any tree shape.
type List struct {
	Inner Builder
}

// NewList wraps inner so that ambiguity is enumerated as a list of
// candidate values rather than merged or rejected.
func NewList(inner Builder) *List { return &List{Inner: inner} }

func (l *List) StartRule(ctx Context) interface{} {
	return []interface{}{l.Inner.StartRule(ctx)}
}

func (l *List) Terminal(ctx Context, token interface{}) interface{} {
	return []interface{}{l.Inner.Terminal(ctx, token)}
}

func (l *List) Extend(ctx Context, prev, contribution interface{}) interface{} {
	prevList := prev.([]interface{})
	contribList := contribution.([]interface{})
	out := make([]interface{}, 0, len(prevList)*len(contribList))
	for _, p := range prevList {
		for _, c := range contribList {
			out = append(out, l.Inner.Extend(ctx, p, c))
		}
	}
	return out
}

func (l *List) SkipOptional(ctx Context, prev interface{}) interface{} {
	return l.mapEach(prev, func(p interface{}) interface{} { return l.Inner.SkipOptional(ctx, p) })
}

func (l *List) BeginMultiple(ctx Context, prev interface{}) interface{} {
	return l.mapEach(prev, func(p interface{}) interface{} { return l.Inner.BeginMultiple(ctx, p) })
}

func (l *List) EndMultiple(ctx Context, prev interface{}) interface{} {
	return l.mapEach(prev, func(p interface{}) interface{} { return l.Inner.EndMultiple(ctx, p) })
}

func (l *List) EndRule(ctx Context, prev interface{}) interface{} {
	return l.mapEach(prev, func(p interface{}) interface{} { return l.Inner.EndRule(ctx, p) })
}

func (l *List) MergeVertical(ctx Context, values []interface{}) interface{} {
	return concatLists(values)
}

func (l *List) MergeHorizontal(ctx Context, values []interface{}) interface{} {
	return concatLists(values)
}

func (l *List) mapEach(v interface{}, f func(interface{}) interface{}) interface{} {
	list := v.([]interface{})
	out := make([]interface{}, len(list))
	for i, x := range list {
		out[i] = f(x)
	}
	return out
}

func concatLists(values []interface{}) interface{} {
	var out []interface{}
	for _, v := range values {
		out = append(out, v.([]interface{})...)
	}
	return out
}
