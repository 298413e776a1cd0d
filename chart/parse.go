package chart

import (
	pf "github.com/kavanlabs/parseforest"
	"github.com/kavanlabs/parseforest/forest"
)

// Parse runs the chart engine to completion and hands its root item to
// forest post-processing, returning a forest ready for a builder traversal
// (package build).
func Parse(rs *pf.RuleSet, start string, tokens []interface{}, opts ...Option) (*forest.ParseForest, error) {
	root, err := Run(rs, start, tokens, opts...)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, nil
	}
	return forest.New(root)
}
