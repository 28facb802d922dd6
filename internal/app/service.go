package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/graphacademy/journey/internal/course"
	"github.com/graphacademy/journey/internal/journey"
	"github.com/graphacademy/journey/internal/logging"
	"github.com/graphacademy/journey/internal/mission"
	"github.com/graphacademy/journey/internal/progress"
)

// ErrUnknownMission is returned when a start names a mission the catalog
// does not define.
var ErrUnknownMission = errors.New("unknown mission")

// ErrNoSession is returned for events or queries against a crosser with no
// started mission.
var ErrNoSession = errors.New("no active session for crosser")

// Event is one sensor report in a stateless classify request.
type Event struct {
	Kind string // "vertex" or "edge"
	ID   string
}

// Status is a point-in-time view of a crosser's mission.
type Status struct {
	CrosserID    string
	MissionID    string
	State        mission.State
	JourneyType  journey.Type
	TargetType   journey.Type
	Length       int
	Complete     bool
	Briefing     string
	CompleteText string
}

// ClassifyResult is the outcome of a stateless classification.
type ClassifyResult struct {
	Type      journey.Type
	Length    int
	Anomalies int
	Warnings  []string
}

// Service owns the per-crosser mission sessions. All session access goes
// through one mutex: the core is single-threaded by design, and this is
// its single mutual-exclusion boundary when driven from concurrent
// transports.
type Service struct {
	mu       sync.Mutex
	catalog  *mission.Catalog
	course   *course.Course
	courses  CourseCache
	store    progress.Store
	sessions map[string]*session

	listeners []Listener
	debounce  time.Duration
	clock     func() time.Time
	log       *slog.Logger
}

type session struct {
	crosserID string
	machine   *mission.Machine
}

// Option configures a Service.
type Option func(*Service)

// WithCourse sets the course map used to flag events referencing
// undefined vertices or bridges.
func WithCourse(c *course.Course) Option {
	return func(s *Service) {
		s.course = c
	}
}

// WithCourseCache sets the cache for per-request course compilation.
func WithCourseCache(cc CourseCache) Option {
	return func(s *Service) {
		s.courses = cc
	}
}

// WithProgressStore sets the completion-flag store.
func WithProgressStore(store progress.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithListener registers a service-level listener. Registration order is
// notification order.
func WithListener(l Listener) Option {
	return func(s *Service) {
		s.listeners = append(s.listeners, l)
	}
}

// WithDebounce overrides the mission start debounce window.
func WithDebounce(d time.Duration) Option {
	return func(s *Service) {
		s.debounce = d
	}
}

// WithServiceClock overrides the time source (used in tests).
func WithServiceClock(now func() time.Time) Option {
	return func(s *Service) {
		s.clock = now
	}
}

func NewService(catalog *mission.Catalog, opts ...Option) *Service {
	s := &Service{
		catalog:  catalog,
		store:    progress.NewMemory(),
		sessions: make(map[string]*session),
		debounce: mission.DefaultDebounce,
		clock:    time.Now,
		log:      logging.New("app"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartMission arms the mission for the crosser, creating a session when
// none exists. An empty crosser id gets a generated one, returned in the
// status.
func (s *Service) StartMission(crosserID, missionID string) (Status, error) {
	spec, ok := s.catalog.Get(missionID)
	if !ok {
		return Status{}, fmt.Errorf("%w: %q", ErrUnknownMission, missionID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if crosserID == "" {
		crosserID = uuid.NewString()
	}

	sess, ok := s.sessions[crosserID]
	if !ok {
		sess = &session{
			crosserID: crosserID,
			machine: mission.NewMachine(
				mission.WithDebounce(s.debounce),
				mission.WithClock(s.clock),
			),
		}
		sess.machine.Subscribe(&sessionObserver{svc: s, crosserID: crosserID})
		s.sessions[crosserID] = sess
	}

	if err := sess.machine.Start(spec); err != nil {
		return Status{}, err
	}
	return s.statusLocked(sess), nil
}

// VertexVisited records a vertex visit for the crosser.
func (s *Service) VertexVisited(crosserID, vertexID string) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[crosserID]
	if !ok {
		return Status{}, fmt.Errorf("%w: %q", ErrNoSession, crosserID)
	}
	if s.course != nil && !s.course.HasVertex(vertexID) {
		s.log.Warn("vertex not on course", "crosser", crosserID, "vertex", vertexID)
	}
	if err := sess.machine.VertexVisited(vertexID); err != nil {
		return Status{}, err
	}
	return s.statusLocked(sess), nil
}

// EdgeCrossed records an edge crossing for the crosser.
func (s *Service) EdgeCrossed(crosserID, edgeID string) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[crosserID]
	if !ok {
		return Status{}, fmt.Errorf("%w: %q", ErrNoSession, crosserID)
	}
	if s.course != nil && !s.course.HasBridge(edgeID) {
		s.log.Warn("bridge not on course", "crosser", crosserID, "bridge", edgeID)
	}
	if err := sess.machine.EdgeCrossed(edgeID); err != nil {
		return Status{}, err
	}
	return s.statusLocked(sess), nil
}

// Status reports the crosser's mission state without side effects.
func (s *Service) Status(crosserID string) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[crosserID]
	if !ok {
		return Status{}, fmt.Errorf("%w: %q", ErrNoSession, crosserID)
	}
	return s.statusLocked(sess), nil
}

// Reset discards the crosser's current journey.
func (s *Service) Reset(crosserID string) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[crosserID]
	if !ok {
		return Status{}, fmt.Errorf("%w: %q", ErrNoSession, crosserID)
	}
	sess.machine.Reset()
	return s.statusLocked(sess), nil
}

// Progress lists the crosser's completed mission ids in completion order.
func (s *Service) Progress(ctx context.Context, crosserID string) ([]string, error) {
	return s.store.Completed(ctx, crosserID)
}

// ClassifyEvents classifies a supplied event sequence without touching any
// session. When courseDOT is provided, events referencing ids the course
// does not define are reported as warnings, not errors.
func (s *Service) ClassifyEvents(courseDOT string, events []Event) (ClassifyResult, error) {
	var c *course.Course
	if courseDOT != "" {
		var err error
		if s.courses != nil {
			c, err = s.courses.GetOrCompute(courseDOT, func() (*course.Course, error) {
				return course.Compile(courseDOT)
			})
		} else {
			c, err = course.Compile(courseDOT)
		}
		if err != nil {
			return ClassifyResult{}, err
		}
	}

	ledger := journey.NewLedger()
	var res ClassifyResult

	for i, ev := range events {
		switch ev.Kind {
		case "vertex":
			if c != nil && !c.HasVertex(ev.ID) {
				res.Warnings = append(res.Warnings, fmt.Sprintf("event %d: vertex %q not on course", i, ev.ID))
			}
			ledger.RecordVertexVisit(ev.ID)
		case "edge":
			if c != nil && !c.HasBridge(ev.ID) {
				res.Warnings = append(res.Warnings, fmt.Sprintf("event %d: bridge %q not on course", i, ev.ID))
			}
			if err := ledger.RecordEdgeCrossing(ev.ID); err != nil {
				res.Anomalies++
				res.Warnings = append(res.Warnings, fmt.Sprintf("event %d: dropped edge %q: %v", i, ev.ID, err))
			}
		default:
			return ClassifyResult{}, fmt.Errorf("event %d: unknown kind %q", i, ev.Kind)
		}
	}

	res.Type = journey.Classify(ledger.Steps())
	res.Length = ledger.Len()
	return res, nil
}

func (s *Service) statusLocked(sess *session) Status {
	m := sess.machine
	spec := m.Spec()
	st := Status{
		CrosserID:   sess.crosserID,
		MissionID:   spec.ID,
		State:       m.State(),
		JourneyType: m.JourneyType(),
		TargetType:  m.TargetType(),
		Length:      m.JourneyLength(),
		Complete:    m.IsComplete(),
		Briefing:    spec.Briefing,
	}
	if st.Complete {
		st.CompleteText = spec.CompleteText
	}
	return st
}

// sessionObserver bridges one machine's notifications to the service
// listeners and the progress store.
type sessionObserver struct {
	svc       *Service
	crosserID string
}

func (o *sessionObserver) OnTypeChanged(previous, current journey.Type) {
	for _, l := range o.svc.listeners {
		l.JourneyTypeChanged(o.crosserID, previous, current)
	}
}

func (o *sessionObserver) OnCompleted(spec mission.Spec, result journey.Type, length int) {
	if err := o.svc.store.MarkComplete(context.Background(), o.crosserID, spec.ID); err != nil {
		o.svc.log.Error("failed to persist mission completion",
			"crosser", o.crosserID, "mission", spec.ID, "err", err)
	}
	for _, l := range o.svc.listeners {
		l.MissionCompleted(o.crosserID, spec, result, length)
	}
}
