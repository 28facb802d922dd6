package journey

import "testing"

// walked builds a step sequence from parallel vertex/edge lists; edges[i]
// is the edge used to arrive at vertices[i] ("" for none).
func walked(t *testing.T, vertices, edges []string) []Step {
	t.Helper()
	if len(vertices) != len(edges) {
		t.Fatalf("walked: %d vertices but %d edges", len(vertices), len(edges))
	}
	steps := make([]Step, 0, len(vertices))
	for i, v := range vertices {
		steps = append(steps, Step{Vertex: v, Edge: edges[i], Index: i})
	}
	return steps
}

func TestClassify_ShortJourneysAreWalks(t *testing.T) {
	if got := Classify(nil); got != TypeWalk {
		t.Fatalf("expected walk for empty journey, got %s", got)
	}
	single := walked(t, []string{"A"}, []string{""})
	if got := Classify(single); got != TypeWalk {
		t.Fatalf("expected walk for single vertex, got %s", got)
	}
}

func TestClassify_Path(t *testing.T) {
	steps := walked(t,
		[]string{"A", "B", "C", "D"},
		[]string{"", "e1", "e2", "e3"},
	)
	if got := Classify(steps); got != TypePath {
		t.Fatalf("expected path, got %s", got)
	}
}

func TestClassify_Trail(t *testing.T) {
	// B is revisited, but no edge repeats and the journey stays open.
	steps := walked(t,
		[]string{"A", "B", "C", "B", "D"},
		[]string{"", "e1", "e2", "e3", "e4"},
	)
	if got := Classify(steps); got != TypeTrail {
		t.Fatalf("expected trail, got %s", got)
	}
}

func TestClassify_Cycle(t *testing.T) {
	steps := walked(t,
		[]string{"A", "B", "C", "A"},
		[]string{"", "e1", "e2", "e3"},
	)
	if got := Classify(steps); got != TypeCycle {
		t.Fatalf("expected cycle, got %s", got)
	}
}

func TestClassify_CircuitRevisitsVertexNotEdge(t *testing.T) {
	steps := walked(t,
		[]string{"A", "B", "C", "B", "A"},
		[]string{"", "e1", "e2", "e3", "e4"},
	)
	if got := Classify(steps); got != TypeCircuit {
		t.Fatalf("expected circuit, got %s", got)
	}
}

func TestClassify_ClosedWithRepeatedEdgeDegradesToWalk(t *testing.T) {
	// Returns to start, but e1 is crossed twice: not a circuit, and the
	// closing vertex repeat plus the edge repeat rule out path and trail.
	steps := walked(t,
		[]string{"A", "B", "C", "D", "A"},
		[]string{"", "e1", "e2", "e3", "e1"},
	)
	if got := Classify(steps); got != TypeWalk {
		t.Fatalf("expected walk, got %s", got)
	}
}

func TestClassify_ImmediateBacktrackIsWalk(t *testing.T) {
	// A-B-A over the same bridge: closed, edge repeats.
	steps := walked(t,
		[]string{"A", "B", "A"},
		[]string{"", "e1", "e1"},
	)
	if got := Classify(steps); got != TypeWalk {
		t.Fatalf("expected walk, got %s", got)
	}
}

func TestClassify_TwoStepReturnIsNotClosed(t *testing.T) {
	// The closure check requires more than two steps; A-A alone is judged
	// as an open sequence with a repeated vertex and distinct edges.
	steps := walked(t,
		[]string{"A", "A"},
		[]string{"", "e1"},
	)
	if got := Classify(steps); got != TypeTrail {
		t.Fatalf("expected trail, got %s", got)
	}
}

func TestClassify_IsPure(t *testing.T) {
	steps := walked(t,
		[]string{"A", "B", "C", "A"},
		[]string{"", "e1", "e2", "e3"},
	)
	first := Classify(steps)
	second := Classify(steps)
	if first != second {
		t.Fatalf("classification drifted: %s then %s", first, second)
	}
}

func TestClassify_IgnoresUnsetEdges(t *testing.T) {
	// An anomalous sequence where one crossing was never reported; the
	// missing edge must not disqualify the journey.
	steps := walked(t,
		[]string{"A", "B", "C", "D"},
		[]string{"", "e1", "", "e3"},
	)
	if got := Classify(steps); got != TypePath {
		t.Fatalf("expected path, got %s", got)
	}
}
