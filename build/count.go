package build

import "math/big"

// countBuilder is the standard Count builder: it yields the number of distinct parse
// trees a forest represents, using math/big so deeply ambiguous grammars
// (a thousand tokens can mean 2**1000 distinct derivations) never overflow
// a machine word.
type countBuilder struct{}

// NewCount returns a Count builder.
func NewCount() *countBuilder { return &countBuilder{} }

func (countBuilder) StartRule(ctx Context) interface{} { return big.NewInt(1) }
func (countBuilder) Terminal(ctx Context, token interface{}) interface{} { return big.NewInt(1) }

func (countBuilder) Extend(ctx Context, prev, contribution interface{}) interface{} {
	return new(big.Int).Mul(prev.(*big.Int), contribution.(*big.Int))
}

func (countBuilder) SkipOptional(ctx Context, prev interface{}) interface{} { return prev }
func (countBuilder) BeginMultiple(ctx Context, prev interface{}) interface{} { return prev }
func (countBuilder) EndMultiple(ctx Context, prev interface{}) interface{} { return prev }
func (countBuilder) EndRule(ctx Context, prev interface{}) interface{} { return prev }

func (countBuilder) MergeVertical(ctx Context, values []interface{}) interface{} {
	return sumBig(values)
}

func (countBuilder) MergeHorizontal(ctx Context, values []interface{}) interface{} {
	return sumBig(values)
}

func sumBig(values []interface{}) *big.Int {
	sum := big.NewInt(0)
	for _, v := range values {
		sum.Add(sum, v.(*big.Int))
	}
	return sum
}
