package build

// Lazy, stackless sequence machinery backing the Iterator builder.
//
// A thunk represents a deferred step of a sequence computation. Thunks
// never force other thunks; force runs a trampoline loop that does the
// forcing for them, keeping the pending continuations on an explicit
// slice, so no matter how deeply thunks end up nested the host call stack
// does not grow. The price is that every combinator below must be written
// in a tail-passing style: a compute or then function may construct and
// return further thunks, but must never call force itself.

// cons is a forced sequence state: a head value plus a thunk computing the
// remainder. A nil *cons means the sequence is exhausted.
type cons struct {
	head interface{}
	tail *thunk
}

// thunk is a deferred sequence computation. compute returns either another
// *thunk (more deferred work), a *cons, or nil (exhausted). then, if set,
// is a continuation applied by the trampoline to the forced state of
// whatever compute produced.
type thunk struct {
	compute func() interface{}
	then    func(c *cons) interface{}
}

// force trampolines v down to a forced sequence state. It is the only
// place in this file where thunks are evaluated.
func force(v interface{}) *cons {
	var thens []func(c *cons) interface{}
	for {
		if t, ok := v.(*thunk); ok {
			if t.then != nil {
				thens = append(thens, t.then)
			}
			v = t.compute()
			continue
		}
		c, _ := v.(*cons)
		if len(thens) > 0 {
			next := thens[len(thens)-1]
			thens = thens[:len(thens)-1]
			v = next(c)
			continue
		}
		return c
	}
}

// thunkFromSlice yields the elements of l starting at index.
func thunkFromSlice(l []interface{}, index int) *thunk {
	return &thunk{compute: func() interface{} {
		if index < len(l) {
			return &cons{head: l[index], tail: thunkFromSlice(l, index+1)}
		}
		return nil
	}}
}

// bindThunk defers t and hands its forced state to f.
func bindThunk(t *thunk, f func(c *cons) interface{}) *thunk {
	return &thunk{compute: func() interface{} { return t }, then: f}
}

// mapThunk lazily applies f to every element of t.
func mapThunk(t *thunk, f func(v interface{}) interface{}) *thunk {
	return bindThunk(t, func(c *cons) interface{} {
		if c == nil {
			return nil
		}
		return &cons{head: f(c.head), tail: mapThunk(c.tail, f)}
	})
}

// concatThunk lazily appends b after a is exhausted.
func concatThunk(a, b *thunk) *thunk {
	return bindThunk(a, func(c *cons) interface{} {
		if c == nil {
			return b
		}
		return &cons{head: c.head, tail: concatThunk(c.tail, b)}
	})
}

// flattenThunk lazily concatenates a sequence whose elements are
// themselves *thunk sequences.
func flattenThunk(tt *thunk) *thunk {
	return bindThunk(tt, func(c *cons) interface{} {
		if c == nil {
			return nil
		}
		return concatThunk(c.head.(*thunk), flattenThunk(c.tail))
	})
}

// crossThunk lazily combines every element of a with every element of b
// via f.
func crossThunk(a, b *thunk, f func(x, y interface{}) interface{}) *thunk {
	return flattenThunk(mapThunk(a, func(x interface{}) interface{} {
		return mapThunk(b, func(y interface{}) interface{} { return f(x, y) })
	}))
}

// Seq is a lazy sequence of candidate values. Nothing past the head is
// computed until Next is called, so an Iterator-built forest can enumerate
// an astronomically ambiguous derivation set without ever materializing
// it, and forcing an element costs no host-stack depth regardless of how
// the sequence was assembled.
type Seq struct {
	t *thunk
}

// emptySeq yields nothing.
var emptySeq = &Seq{}

// Next forces exactly one element: the value, the remaining sequence, and
// whether a value was actually available.
func (s *Seq) Next() (interface{}, *Seq, bool) {
	if s == nil || s.t == nil {
		return nil, nil, false
	}
	c := force(s.t)
	if c == nil {
		return nil, nil, false
	}
	return c.head, &Seq{t: c.tail}, true
}

// All forces the entire sequence into a slice, for callers that want an
// eager view (e.g. tests).
func (s *Seq) All() []interface{} {
	var out []interface{}
	cur := s
	for {
		v, rest, ok := cur.Next()
		if !ok {
			return out
		}
		out = append(out, v)
		cur = rest
	}
}

// Iterator wraps another builder and threads a lazy thunk sequence of
// candidate values through every slot, the lazy counterpart of List.
type Iterator struct {
	Inner Builder
}

// NewIterator wraps inner so that ambiguity is enumerated lazily.
func NewIterator(inner Builder) *Iterator { return &Iterator{Inner: inner} }

func (it *Iterator) StartRule(ctx Context) interface{} {
	return thunkFromSlice([]interface{}{it.Inner.StartRule(ctx)}, 0)
}

func (it *Iterator) Terminal(ctx Context, token interface{}) interface{} {
	return thunkFromSlice([]interface{}{it.Inner.Terminal(ctx, token)}, 0)
}

func (it *Iterator) Extend(ctx Context, prev, contribution interface{}) interface{} {
	return crossThunk(prev.(*thunk), contribution.(*thunk), func(p, c interface{}) interface{} {
		return it.Inner.Extend(ctx, p, c)
	})
}

func (it *Iterator) SkipOptional(ctx Context, prev interface{}) interface{} {
	return mapThunk(prev.(*thunk), func(p interface{}) interface{} { return it.Inner.SkipOptional(ctx, p) })
}

func (it *Iterator) BeginMultiple(ctx Context, prev interface{}) interface{} {
	return mapThunk(prev.(*thunk), func(p interface{}) interface{} { return it.Inner.BeginMultiple(ctx, p) })
}

func (it *Iterator) EndMultiple(ctx Context, prev interface{}) interface{} {
	return mapThunk(prev.(*thunk), func(p interface{}) interface{} { return it.Inner.EndMultiple(ctx, p) })
}

func (it *Iterator) EndRule(ctx Context, prev interface{}) interface{} {
	return mapThunk(prev.(*thunk), func(p interface{}) interface{} { return it.Inner.EndRule(ctx, p) })
}

func (it *Iterator) MergeVertical(ctx Context, values []interface{}) interface{} {
	return flattenThunk(thunkFromSlice(values, 0))
}

func (it *Iterator) MergeHorizontal(ctx Context, values []interface{}) interface{} {
	return flattenThunk(thunkFromSlice(values, 0))
}
