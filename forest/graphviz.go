package forest

import (
	"fmt"
	"io"
	"sort"

	"github.com/cnf/structhash"

	pf "github.com/kavanlabs/parseforest"
)

// ToGraphViz writes a Graphviz "dot" rendering of f to w: one node per
// forest item, one edge per source pair.
func ToGraphViz(f *ParseForest, w io.Writer) {
	io.WriteString(w, "digraph G {\n")
	io.WriteString(w, "  graph [fontname=\"Helvetica\"];\n")
	io.WriteString(w, "  node [fontname=\"Helvetica\",shape=box,fontsize=10];\n")
	io.WriteString(w, "  edge [fontname=\"Helvetica\",fontsize=9];\n")

	nodes := f.closure()
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].String() < nodes[j].String()
	})
	for _, n := range nodes {
		fmt.Fprintf(w, "  %q [label=%q]\n", nodeID(n), n.String())
	}
	for _, n := range nodes {
		for _, src := range n.Sources {
			if src.Pred != nil {
				fmt.Fprintf(w, "  %q -> %q [label=%q]\n", nodeID(src.Pred), nodeID(n), src.Contribution.String())
			}
		}
	}
	io.WriteString(w, "}\n")
}

// nodeID derives a stable graph-node identifier from an item's string
// form.
func nodeID(n *pf.PartialItem) string {
	h, err := structhash.Hash(struct{ S string }{n.String()}, 1)
	if err != nil {
		return fmt.Sprintf("%p", n)
	}
	return h
}
