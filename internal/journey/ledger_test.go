package journey

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func testClock() func() time.Time {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
}

func TestLedger_RecordsCrossThenVisitOrder(t *testing.T) {
	// The game reports a bridge crossing before the destination vertex
	// trigger fires. Crossings must end up as the incoming edge of the
	// vertex they lead to, never of the vertex they leave.
	l := NewLedger(WithClock(testClock()))

	l.RecordVertexVisit("A")
	mustCross(t, l, "e1")
	l.RecordVertexVisit("B")
	mustCross(t, l, "e2")
	l.RecordVertexVisit("C")
	mustCross(t, l, "e3")
	l.RecordVertexVisit("A")

	if diff := cmp.Diff([]string{"A", "B", "C", "A"}, l.Vertices()); diff != "" {
		t.Fatalf("vertices mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"e1", "e2", "e3"}, l.Edges()); diff != "" {
		t.Fatalf("edges mismatch (-want +got):\n%s", diff)
	}
	if got := l.Steps()[0].Edge; got != "" {
		t.Fatalf("expected first step without edge, got %q", got)
	}
	if got := l.StartVertex(); got != "A" {
		t.Fatalf("expected start vertex A, got %q", got)
	}
}

func TestLedger_RecordsVisitThenCrossOrder(t *testing.T) {
	// Some sensor wirings report the destination vertex first and the
	// crossing after. Both orders must converge to the same journey.
	l := NewLedger()

	l.RecordVertexVisit("A")
	l.RecordVertexVisit("B")
	mustCross(t, l, "e1")
	l.RecordVertexVisit("C")
	mustCross(t, l, "e2")

	if diff := cmp.Diff([]string{"e1", "e2"}, l.Edges()); diff != "" {
		t.Fatalf("edges mismatch (-want +got):\n%s", diff)
	}
	steps := l.Steps()
	if steps[1].Edge != "e1" || steps[2].Edge != "e2" {
		t.Fatalf("edges attached to wrong steps: %+v", steps)
	}
}

func TestLedger_EdgeOnEmptyLedgerIsDropped(t *testing.T) {
	l := NewLedger()

	err := l.RecordEdgeCrossing("e1")
	if !errors.Is(err, ErrEdgeBeforeVertex) {
		t.Fatalf("expected ErrEdgeBeforeVertex, got %v", err)
	}
	if l.Len() != 0 {
		t.Fatalf("expected empty ledger, got %d steps", l.Len())
	}

	// The dropped crossing must not leak into the next journey.
	l.RecordVertexVisit("A")
	if got := l.Steps()[0].Edge; got != "" {
		t.Fatalf("expected no edge on first step, got %q", got)
	}
}

func TestLedger_ResetIsIdempotent(t *testing.T) {
	l := NewLedger()
	l.RecordVertexVisit("A")
	mustCross(t, l, "e1")
	l.RecordVertexVisit("B")

	for i := 0; i < 3; i++ {
		l.Reset()
		if l.Len() != 0 {
			t.Fatalf("reset %d left %d steps", i, l.Len())
		}
		if l.StartVertex() != "" {
			t.Fatalf("reset %d left start vertex %q", i, l.StartVertex())
		}
	}
}

func TestLedger_ResetClearsPendingEdge(t *testing.T) {
	l := NewLedger()
	l.RecordVertexVisit("A")
	mustCross(t, l, "e1") // held for the next visit

	l.Reset()
	l.RecordVertexVisit("X")
	l.RecordVertexVisit("Y")

	if got := l.Edges(); len(got) != 0 {
		t.Fatalf("expected stale pending edge to be discarded, got %v", got)
	}
}

func TestLedger_StepsReturnsCopy(t *testing.T) {
	l := NewLedger()
	l.RecordVertexVisit("A")

	steps := l.Steps()
	steps[0].Vertex = "mutated"

	if got := l.Steps()[0].Vertex; got != "A" {
		t.Fatalf("ledger state leaked through Steps copy: %q", got)
	}
}

func TestLedger_IndexesAreStrictlyIncreasing(t *testing.T) {
	l := NewLedger()
	for _, v := range []string{"A", "B", "C"} {
		l.RecordVertexVisit(v)
	}
	for i, s := range l.Steps() {
		if s.Index != i {
			t.Fatalf("expected index %d, got %d", i, s.Index)
		}
	}
}

func mustCross(t *testing.T, l *Ledger, edge string) {
	t.Helper()
	if err := l.RecordEdgeCrossing(edge); err != nil {
		t.Fatalf("record edge %s: %v", edge, err)
	}
}
