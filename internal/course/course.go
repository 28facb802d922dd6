// Package course loads the authored traversal worlds: named vertices
// connected by named bridges. A course is advisory — the sensor layer is
// the source of truth for what the player actually touched — but it lets
// the service flag events that reference ids no author ever defined.
package course

// Bridge is a named connection between two vertices.
type Bridge struct {
	ID   string
	From string
	To   string
}

// Course is a compiled course map.
type Course struct {
	Name     string
	Vertices []string
	Bridges  []Bridge

	vertexSet map[string]bool
	bridges   map[string]Bridge
}

// HasVertex reports whether the course defines the vertex.
func (c *Course) HasVertex(id string) bool {
	return c.vertexSet[id]
}

// Bridge returns the bridge with the given id.
func (c *Course) Bridge(id string) (Bridge, bool) {
	b, ok := c.bridges[id]
	return b, ok
}

// HasBridge reports whether the course defines the bridge.
func (c *Course) HasBridge(id string) bool {
	_, ok := c.bridges[id]
	return ok
}

func (c *Course) index() {
	c.vertexSet = make(map[string]bool, len(c.Vertices))
	for _, v := range c.Vertices {
		c.vertexSet[v] = true
	}
	c.bridges = make(map[string]Bridge, len(c.Bridges))
	for _, b := range c.Bridges {
		c.bridges[b.ID] = b
	}
}
