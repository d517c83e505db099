package xab

import (
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"
	"github.com/pkg/errors"
)

// ToDot renders p in Graphviz DOT format. Every cell becomes a node named
// "d<depth>_i<index>" labelled with its statistics; edges go from parent to
// children.
func ToDot(p Partition) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("G"); err != nil {
		return "", errors.WithStack(err)
	}
	if err := g.SetDir(true); err != nil {
		return "", errors.WithStack(err)
	}

	for h := 0; h < p.Depth(); h++ {
		for _, id := range p.Layer(h) {
			n := p.Get(id)
			attrs := map[string]string{
				"shape": "box",
				"label": strconv.Quote(dotLabel(n)),
			}
			if err := g.AddNode("G", dotName(n), attrs); err != nil {
				return "", errors.Wrapf(err, "add node %s", dotName(n))
			}

			if n.parent == nilNode {
				continue
			}
			parent := p.Get(n.parent)
			if err := g.AddEdge(dotName(parent), dotName(n), true, nil); err != nil {
				return "", errors.Wrapf(err, "add edge %s -> %s", dotName(parent), dotName(n))
			}
		}
	}

	return g.String(), nil
}

func dotName(n *Node) string { return fmt.Sprintf("d%d_i%d", n.depth, n.index) }

func dotLabel(n *Node) string {
	return fmt.Sprintf("(%d, %d)\nn=%d mean=%.4g\nU=%.4g B=%.4g", n.depth, n.index, n.visits, n.mean, n.uvalue, n.bvalue)
}
