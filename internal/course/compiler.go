package course

import (
	"fmt"
	"strings"

	"github.com/awalterschulze/gographviz"
)

// Compile parses a DOT course map. Nodes are vertices; edges are bridges,
// named by a bridge="..." attribute (defaulting to from_to). Bridge ids
// must be unique because the classifier counts edge repetition by id.
func Compile(dot string) (*Course, error) {
	ast, err := gographviz.ParseString(dot)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DOT: %w", err)
	}

	g := gographviz.NewGraph()
	if err := gographviz.Analyse(ast, g); err != nil {
		return nil, fmt.Errorf("failed to analyze DOT: %w", err)
	}

	c := &Course{Name: g.Name}

	// 1) Vertices, in authored order.
	seen := map[string]bool{}
	for _, n := range g.Nodes.Nodes {
		if seen[n.Name] {
			return nil, fmt.Errorf("duplicate vertex %q", n.Name)
		}
		seen[n.Name] = true
		c.Vertices = append(c.Vertices, n.Name)
	}
	if len(c.Vertices) == 0 {
		return nil, fmt.Errorf("course has no vertices")
	}

	// 2) Bridges. gographviz does not guarantee authored order, so the
	// edge list is re-extracted from the DOT text.
	orderedEdges, err := extractEdgesInTextOrder(dot)
	if err != nil {
		return nil, fmt.Errorf("failed to extract edge order from DOT: %w", err)
	}

	bridgeIDs := map[string]bool{}
	for _, e := range orderedEdges {
		if !seen[e.From] {
			return nil, fmt.Errorf("bridge references unknown vertex %q", e.From)
		}
		if !seen[e.To] {
			return nil, fmt.Errorf("bridge references unknown vertex %q", e.To)
		}

		id := strings.TrimSpace(e.Bridge)
		if id == "" {
			id = e.From + "_" + e.To
		}
		if bridgeIDs[id] {
			return nil, fmt.Errorf("duplicate bridge id %q", id)
		}
		bridgeIDs[id] = true

		c.Bridges = append(c.Bridges, Bridge{ID: id, From: e.From, To: e.To})
	}

	c.index()
	return c, nil
}
