package journey

// Classify derives the journey type for a recorded step sequence. It is a
// pure function and is re-derived on every call rather than cached
// incrementally, so the result can never drift from the ledger.
//
// Precedence: a journey that returns to its start with no internal repeats
// is classified as the most restrictive applicable type. Cycle is checked
// before Circuit and Path before Trail because each implies the other. A
// closed journey that repeats an edge is judged like any open sequence.
func Classify(steps []Step) Type {
	if len(steps) < 2 {
		return TypeWalk
	}

	vertices := verticesOf(steps)
	edges := edgesOf(steps)

	returnsToStart := len(vertices) > 2 && vertices[0] == vertices[len(vertices)-1]
	if returnsToStart {
		closed := vertices[:len(vertices)-1]
		noRepeatedVertices := allDistinct(closed)
		noRepeatedEdges := allDistinct(edges)

		if noRepeatedVertices && noRepeatedEdges {
			return TypeCycle
		}
		if noRepeatedEdges {
			return TypeCircuit
		}
	}

	if allDistinct(vertices) {
		return TypePath
	}
	if allDistinct(edges) {
		return TypeTrail
	}
	return TypeWalk
}

func allDistinct(ids []string) bool {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return false
		}
		seen[id] = true
	}
	return true
}
