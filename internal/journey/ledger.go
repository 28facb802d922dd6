package journey

import (
	"errors"
	"time"
)

// ErrEdgeBeforeVertex is returned when an edge crossing arrives with no
// recorded vertex to attach it to. The crossing is dropped; no step is
// fabricated.
var ErrEdgeBeforeVertex = errors.New("edge crossing reported before any vertex visit")

// Step is one traversal event: a vertex visit and the edge used to arrive
// at it. The first step of a journey has no edge.
type Step struct {
	Vertex string
	Edge   string
	Index  int
	At     time.Time
}

// Ledger is the append-only record of the current traversal. It is owned
// and mutated by exactly one caller at a time; wrap access in a single
// mutex when feeding it from concurrent sources.
type Ledger struct {
	steps   []Step
	start   string
	pending string
	now     func() time.Time
}

// LedgerOption configures a Ledger.
type LedgerOption func(*Ledger)

// WithClock overrides the timestamp source (used in tests).
func WithClock(now func() time.Time) LedgerOption {
	return func(l *Ledger) {
		l.now = now
	}
}

func NewLedger(opts ...LedgerOption) *Ledger {
	l := &Ledger{now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Reset discards the journey wholesale: steps, starting-vertex marker and
// any pending edge. It is idempotent and safe to call at any point.
func (l *Ledger) Reset() {
	l.steps = nil
	l.start = ""
	l.pending = ""
}

// RecordVertexVisit appends a step for the visited vertex. A pending edge
// crossing, if one was reported ahead of this visit, becomes the incoming
// edge of the new step.
func (l *Ledger) RecordVertexVisit(vertex string) Step {
	s := Step{
		Vertex: vertex,
		Edge:   l.pending,
		Index:  len(l.steps),
		At:     l.now(),
	}
	if len(l.steps) == 0 {
		l.start = vertex
		s.Edge = ""
	}
	l.pending = ""
	l.steps = append(l.steps, s)
	return s
}

// RecordEdgeCrossing attaches the crossed edge to the most recent step when
// that step is still waiting for its incoming edge. When the crossing is
// reported ahead of the destination visit (the last step is the journey
// start, or already carries its edge), the edge is held and attached to the
// next appended step. On an empty ledger the crossing is dropped and
// ErrEdgeBeforeVertex returned.
func (l *Ledger) RecordEdgeCrossing(edge string) error {
	if len(l.steps) == 0 {
		return ErrEdgeBeforeVertex
	}
	last := &l.steps[len(l.steps)-1]
	if last.Index == 0 || last.Edge != "" {
		l.pending = edge
		return nil
	}
	last.Edge = edge
	return nil
}

// Len returns the number of recorded steps.
func (l *Ledger) Len() int {
	return len(l.steps)
}

// StartVertex returns the first visited vertex, or "" before any visit.
func (l *Ledger) StartVertex() string {
	return l.start
}

// Steps returns a copy of the recorded steps.
func (l *Ledger) Steps() []Step {
	out := make([]Step, len(l.steps))
	copy(out, l.steps)
	return out
}

// Vertices returns the visited vertex ids in order, duplicates included.
func (l *Ledger) Vertices() []string {
	return verticesOf(l.steps)
}

// Edges returns the crossed edge ids in order, duplicates included. Steps
// whose edge is unset are skipped.
func (l *Ledger) Edges() []string {
	return edgesOf(l.steps)
}

func verticesOf(steps []Step) []string {
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		out = append(out, s.Vertex)
	}
	return out
}

func edgesOf(steps []Step) []string {
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		if s.Edge != "" {
			out = append(out, s.Edge)
		}
	}
	return out
}
