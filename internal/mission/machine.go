package mission

import (
	"errors"
	"log/slog"
	"time"

	"github.com/graphacademy/journey/internal/journey"
	"github.com/graphacademy/journey/internal/logging"
	"github.com/graphacademy/journey/internal/mission/eval"
)

// ErrStartDebounced is returned when a mission start arrives within the
// debounce window of the previous one. Two interleaved starts were a
// historical source of stale-ledger completions, so rapid re-entry is
// rejected rather than tolerated.
var ErrStartDebounced = errors.New("mission start debounced")

// ErrNotStarted is returned for step events or resets delivered before any
// mission has been started.
var ErrNotStarted = errors.New("no mission in progress")

// DefaultDebounce is the minimum interval between mission starts.
const DefaultDebounce = 200 * time.Millisecond

// Observer receives classification and completion notifications. Observers
// are notified synchronously, in registration order, on the goroutine that
// delivered the step event.
type Observer interface {
	OnTypeChanged(previous, current journey.Type)
	OnCompleted(spec Spec, result journey.Type, length int)
}

// Machine is the mission state machine. It exclusively owns its ledger:
// all step events reach the ledger through the machine, and every mutation
// triggers an immediate synchronous re-classification.
type Machine struct {
	ledger    *journey.Ledger
	spec      Spec
	state     State
	current   journey.Type
	completed bool
	observers []Observer

	debounce  time.Duration
	lastStart time.Time
	now       func() time.Time
	log       *slog.Logger
}

// Option configures a Machine.
type Option func(*Machine)

// WithDebounce overrides the mission start debounce window.
func WithDebounce(d time.Duration) Option {
	return func(m *Machine) {
		m.debounce = d
	}
}

// WithClock overrides the time source (used in tests).
func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		m.now = now
	}
}

func NewMachine(opts ...Option) *Machine {
	m := &Machine{
		ledger:   journey.NewLedger(),
		state:    StateNotStarted,
		current:  journey.TypeWalk,
		debounce: DefaultDebounce,
		now:      time.Now,
		log:      logging.New("mission"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Subscribe registers an observer. Registration order is notification
// order.
func (m *Machine) Subscribe(o Observer) {
	m.observers = append(m.observers, o)
}

// Start begins a mission attempt against spec. The ledger is reset and the
// reset verified before any event is accepted: classifying against steps
// left over from a previous mission completes missions instantly, so a
// failed verification reconstructs the ledger from empty instead of
// proceeding.
func (m *Machine) Start(spec Spec) error {
	now := m.now()
	if !m.lastStart.IsZero() && now.Sub(m.lastStart) < m.debounce {
		return ErrStartDebounced
	}
	m.lastStart = now

	m.ledger.Reset()
	if m.ledger.Len() != 0 || m.ledger.StartVertex() != "" {
		m.log.Warn("ledger reset verification failed, reconstructing",
			"residual_steps", m.ledger.Len(),
			"residual_start", m.ledger.StartVertex())
		m.ledger = journey.NewLedger()
	}

	spec = spec.withDefaults()
	if _, err := journey.ParseType(string(spec.Target)); err != nil {
		m.log.Warn("unknown target type, treating as walk-equivalent",
			"mission", spec.ID, "target", spec.Target)
	}

	m.spec = spec
	m.state = StateInProgress
	m.completed = false
	m.current = journey.TypeWalk
	m.log.Info("mission started",
		"mission", spec.ID, "target", spec.Target, "min_steps", spec.MinStepsToComplete)
	return nil
}

// VertexVisited records a vertex visit and re-evaluates the mission.
func (m *Machine) VertexVisited(vertex string) error {
	if m.state == StateNotStarted {
		return ErrNotStarted
	}
	m.ledger.RecordVertexVisit(vertex)
	m.reevaluate()
	return nil
}

// EdgeCrossed records an edge crossing and re-evaluates the mission. An
// edge with no step to attach to is a sensor-ordering anomaly: logged and
// dropped, never fabricated into a step.
func (m *Machine) EdgeCrossed(edge string) error {
	if m.state == StateNotStarted {
		return ErrNotStarted
	}
	if err := m.ledger.RecordEdgeCrossing(edge); err != nil {
		m.log.Warn("dropped anomalous edge crossing", "edge", edge, "err", err)
		return nil
	}
	m.reevaluate()
	return nil
}

// Reset discards the current journey. The mission target stays armed and
// a sticky completion stays complete.
func (m *Machine) Reset() {
	m.ledger.Reset()
	m.current = journey.TypeWalk
}

func (m *Machine) reevaluate() {
	steps := m.ledger.Steps()
	classified := journey.Classify(steps)

	if classified != m.current {
		previous := m.current
		m.current = classified
		if len(steps) >= m.spec.MinStepsForFeedback {
			for _, o := range m.observers {
				o.OnTypeChanged(previous, classified)
			}
		}
	}

	// Completion is sticky: later steps that degrade the classification
	// never un-complete a mission.
	if m.completed {
		return
	}
	if len(steps) < m.spec.MinStepsToComplete {
		return
	}
	if !journey.Satisfies(classified, m.spec.Target) {
		return
	}
	if m.spec.Cond != "" {
		ok, err := eval.Eval(m.spec.Cond, condVars(classified, steps))
		if err != nil {
			m.log.Warn("completion condition failed to evaluate",
				"mission", m.spec.ID, "cond", m.spec.Cond, "err", err)
			return
		}
		if !ok {
			return
		}
	}

	m.completed = true
	m.state = StateComplete
	m.log.Info("mission complete",
		"mission", m.spec.ID, "type", classified, "length", len(steps))
	for _, o := range m.observers {
		o.OnCompleted(m.spec, classified, len(steps))
	}
}

// condVars exposes journey facts to completion conditions.
func condVars(classified journey.Type, steps []journey.Step) map[string]any {
	vertices := make([]string, 0, len(steps))
	edges := make([]string, 0, len(steps))
	for _, s := range steps {
		vertices = append(vertices, s.Vertex)
		if s.Edge != "" {
			edges = append(edges, s.Edge)
		}
	}
	closed := len(vertices) > 2 && vertices[0] == vertices[len(vertices)-1]
	return map[string]any{
		"type":              string(classified),
		"length":            len(steps),
		"closed":            closed,
		"distinct_vertices": distinctCount(vertices),
		"distinct_edges":    distinctCount(edges),
	}
}

func distinctCount(ids []string) int {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		seen[id] = true
	}
	return len(seen)
}

// JourneyLength reports the current journey length without side effects.
func (m *Machine) JourneyLength() int {
	return m.ledger.Len()
}

// JourneyType reports the current classification without side effects.
func (m *Machine) JourneyType() journey.Type {
	return m.current
}

// TargetType reports the armed mission target.
func (m *Machine) TargetType() journey.Type {
	return m.spec.Target
}

// IsComplete reports whether the mission has completed.
func (m *Machine) IsComplete() bool {
	return m.completed
}

// State reports the machine state.
func (m *Machine) State() State {
	return m.state
}

// Spec returns the armed mission spec.
func (m *Machine) Spec() Spec {
	return m.spec
}

// Steps returns a copy of the recorded journey.
func (m *Machine) Steps() []journey.Step {
	return m.ledger.Steps()
}
