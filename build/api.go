package build

import (
	"math/big"

	"github.com/kavanlabs/parseforest/forest"
)

// Count walks f with the Count builder and returns the number of distinct
// parse trees it represents.
func Count(f *forest.ParseForest) (*big.Int, error) {
	v, err := Walk(f, NewCount())
	if err != nil {
		return nil, err
	}
	if v == nil {
		return big.NewInt(0), nil
	}
	return v.(*big.Int), nil
}

// Single walks f with inner wrapped in Single, returning inner's one tree
// value or an *parseforest.AmbiguousParseError if f is ambiguous anywhere.
func Single(f *forest.ParseForest, inner Builder) (interface{}, error) {
	return Walk(f, NewSingle(inner))
}

// All walks f with inner wrapped in List, returning every candidate tree
// inner would have produced along some derivation.
func All(f *forest.ParseForest, inner Builder) ([]interface{}, error) {
	v, err := Walk(f, NewList(inner))
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return v.([]interface{}), nil
}

// Iterate walks f with inner wrapped in Iterator, returning a lazy
// sequence of candidate trees that does not materialize the full
// derivation set up front.
func Iterate(f *forest.ParseForest, inner Builder) (*Seq, error) {
	v, err := Walk(f, NewIterator(inner))
	if err != nil {
		return nil, err
	}
	if v == nil {
		return emptySeq, nil
	}
	return &Seq{t: v.(*thunk)}, nil
}

// Apply walks f with an arbitrary caller-supplied builder.
func Apply(f *forest.ParseForest, b Builder) (interface{}, error) {
	return Walk(f, b)
}
