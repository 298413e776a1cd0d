package build

// singleBuilder wraps another builder and refuses ambiguity: wherever the
// traversal would otherwise merge two or more competing values, it
// aborts the walk instead, surfacing every candidate to the caller via
// *parseforest.AmbiguousParseError (see Walk's recover).
type singleBuilder struct {
	Inner Builder
}

// NewSingle wraps inner so that any ambiguity encountered while building
// with it raises an error instead of being silently resolved.
func NewSingle(inner Builder) *singleBuilder { return &singleBuilder{Inner: inner} }

func (s *singleBuilder) StartRule(ctx Context) interface{} { return s.Inner.StartRule(ctx) }
func (s *singleBuilder) Terminal(ctx Context, token interface{}) interface{} {
	return s.Inner.Terminal(ctx, token)
}
func (s *singleBuilder) Extend(ctx Context, prev, contribution interface{}) interface{} {
	return s.Inner.Extend(ctx, prev, contribution)
}
func (s *singleBuilder) SkipOptional(ctx Context, prev interface{}) interface{} {
	return s.Inner.SkipOptional(ctx, prev)
}
func (s *singleBuilder) BeginMultiple(ctx Context, prev interface{}) interface{} {
	return s.Inner.BeginMultiple(ctx, prev)
}
func (s *singleBuilder) EndMultiple(ctx Context, prev interface{}) interface{} {
	return s.Inner.EndMultiple(ctx, prev)
}
func (s *singleBuilder) EndRule(ctx Context, prev interface{}) interface{} {
	return s.Inner.EndRule(ctx, prev)
}

func (s *singleBuilder) MergeVertical(ctx Context, values []interface{}) interface{} {
	panic(ambiguityPanic{start: ctx.Start, end: ctx.End, candidates: values})
}

func (s *singleBuilder) MergeHorizontal(ctx Context, values []interface{}) interface{} {
	panic(ambiguityPanic{start: ctx.Start, end: ctx.End, candidates: values})
}
