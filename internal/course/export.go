package course

import (
	"fmt"

	"github.com/awalterschulze/gographviz"

	"github.com/graphacademy/journey/internal/journey"
)

// ExportDOT renders the course with a recorded journey overlaid, for
// instructor tooling. Traversed bridges are labeled with their crossing
// order and drawn heavier; visited vertices are filled.
func ExportDOT(c *Course, steps []journey.Step) (string, error) {
	if c == nil {
		return "", fmt.Errorf("course is nil")
	}

	name := c.Name
	if name == "" {
		name = "course"
	}

	g := gographviz.NewGraph()
	if err := g.SetName(name); err != nil {
		return "", err
	}
	if err := g.SetDir(true); err != nil {
		return "", err
	}

	visited := map[string]bool{}
	crossedAt := map[string]int{}
	for _, s := range steps {
		visited[s.Vertex] = true
		if s.Edge != "" {
			if _, ok := crossedAt[s.Edge]; !ok {
				crossedAt[s.Edge] = s.Index
			}
		}
	}

	for _, v := range c.Vertices {
		attrs := map[string]string{}
		if visited[v] {
			attrs["style"] = `"filled"`
		}
		if err := g.AddNode(name, v, attrs); err != nil {
			return "", err
		}
	}

	for _, b := range c.Bridges {
		attrs := map[string]string{
			"label": fmt.Sprintf("%q", b.ID),
		}
		if order, ok := crossedAt[b.ID]; ok {
			attrs["label"] = fmt.Sprintf("\"%s (%d)\"", b.ID, order)
			attrs["penwidth"] = `"2"`
		}
		if err := g.AddEdge(b.From, b.To, true, attrs); err != nil {
			return "", err
		}
	}

	return g.String(), nil
}
