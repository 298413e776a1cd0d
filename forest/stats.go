package forest

import (
	"fmt"

	"github.com/pterm/pterm"
)

// Stats summarizes a post-processed forest for diagnostic output.
type Stats struct {
	InternalNodes int
	EdgeCount     int
}

// Gather computes f's diagnostic statistics.
func (f *ParseForest) Gather() Stats {
	nodes := f.closure()
	edges := 0
	for _, n := range nodes {
		edges += len(f.dests[n])
	}
	return Stats{InternalNodes: len(nodes), EdgeCount: edges}
}

// DumpStats prints a colorized diagnostic summary of f.
func (f *ParseForest) DumpStats() {
	s := f.Gather()
	pterm.Info.Println("parse forest")
	ll := pterm.LeveledList{
		pterm.LeveledListItem{Level: 0, Text: fmt.Sprintf("root: %s", f.Root)},
		pterm.LeveledListItem{Level: 1, Text: fmt.Sprintf("internal nodes: %d", s.InternalNodes)},
		pterm.LeveledListItem{Level: 1, Text: fmt.Sprintf("edges: %d", s.EdgeCount)},
	}
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()
}
