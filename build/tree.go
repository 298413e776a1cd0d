package build

import (
	pf "github.com/kavanlabs/parseforest"
	"github.com/kavanlabs/parseforest/forest"
)

// Tree is the module's default concrete parse-tree shape: a rule, the
// span it covers, and the ordered values (nested *Tree or raw tokens) its
// symbols contributed. The engine itself never prescribes a tree shape;
// Tree exists only so SingleTree/AllTrees/IterateTrees have something to
// hand back without every caller writing its own Builder.
type Tree struct {
	Rule     *pf.Rule
	Start    uint64
	End      uint64
	Children []interface{}
}

func (t *Tree) String() string {
	return t.Rule.String()
}

// treeBuilder implements Builder by assembling Tree values. It is never
// asked to merge (MergeVertical/MergeHorizontal are only invoked by Walk
// directly on the outermost builder, and callers reach treeBuilder only
// wrapped in Single/List/Iterator), but the interface still requires an
// implementation; it picks the first candidate, matching unparser's
// convention.
type treeBuilder struct{}

func (treeBuilder) StartRule(ctx Context) interface{} {
	return &Tree{Rule: ctx.Rule, Start: ctx.Start, End: ctx.Start}
}

func (treeBuilder) Terminal(ctx Context, token interface{}) interface{} {
	return token
}

// Extend never mutates prev: an in-progress Tree is memoized per forest
// item and shared by every successor item that extends it, so each
// extension works on its own copy.
func (treeBuilder) Extend(ctx Context, prev, contribution interface{}) interface{} {
	t := prev.(*Tree)
	children := make([]interface{}, len(t.Children)+1)
	copy(children, t.Children)
	children[len(t.Children)] = contribution
	return &Tree{Rule: t.Rule, Start: t.Start, End: ctx.End, Children: children}
}

func (treeBuilder) SkipOptional(ctx Context, prev interface{}) interface{} { return prev }
func (treeBuilder) BeginMultiple(ctx Context, prev interface{}) interface{} { return prev }
func (treeBuilder) EndMultiple(ctx Context, prev interface{}) interface{} { return prev }

func (treeBuilder) EndRule(ctx Context, prev interface{}) interface{} {
	t := prev.(*Tree)
	if t.End == ctx.End {
		return t
	}
	return &Tree{Rule: t.Rule, Start: t.Start, End: ctx.End, Children: t.Children}
}

func (treeBuilder) MergeVertical(ctx Context, values []interface{}) interface{} {
	return values[0]
}

func (treeBuilder) MergeHorizontal(ctx Context, values []interface{}) interface{} {
	return values[0]
}

// SingleTree walks f building default Trees, refusing ambiguity.
func SingleTree(f *forest.ParseForest) (*Tree, error) {
	v, err := Single(f, treeBuilder{})
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return v.(*Tree), nil
}

// AllTrees walks f building every default Tree its forest represents.
func AllTrees(f *forest.ParseForest) ([]*Tree, error) {
	vs, err := All(f, treeBuilder{})
	if err != nil {
		return nil, err
	}
	out := make([]*Tree, len(vs))
	for i, v := range vs {
		out[i] = v.(*Tree)
	}
	return out, nil
}

// IterateTrees walks f lazily, yielding default Trees one at a time.
func IterateTrees(f *forest.ParseForest) (*Seq, error) {
	return Iterate(f, treeBuilder{})
}
