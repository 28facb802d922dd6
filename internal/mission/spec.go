package mission

import "github.com/graphacademy/journey/internal/journey"

// State of a mission attempt.
type State string

const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StateComplete   State = "complete"
)

// Spec configures one mission: the journey type the player must produce,
// the step thresholds that gate feedback and completion, and the
// instructional text shown by the UI layer.
type Spec struct {
	ID     string       `yaml:"id"`
	Target journey.Type `yaml:"target"`

	// MinStepsForFeedback gates type-change notifications: the first steps
	// of any journey classify trivially and showing "Path!" after one move
	// teaches nothing.
	MinStepsForFeedback int `yaml:"min_steps_for_feedback,omitempty"`

	// MinStepsToComplete gates completion. Zero means the per-type default.
	MinStepsToComplete int `yaml:"min_steps_to_complete,omitempty"`

	Briefing     string `yaml:"briefing,omitempty"`
	CompleteText string `yaml:"complete_text,omitempty"`

	// Cond is an optional extra completion predicate over journey facts,
	// evaluated on top of the type/length gate. See the eval package for
	// the accepted grammar.
	Cond string `yaml:"cond,omitempty"`
}

// defaultMinSteps is the reference completion threshold per target type.
// Thresholds are tuning data, kept separate from the classifier rules.
var defaultMinSteps = map[journey.Type]int{
	journey.TypeWalk:    3,
	journey.TypeTrail:   4,
	journey.TypePath:    4,
	journey.TypeCircuit: 5,
	journey.TypeCycle:   5,
	journey.TypeInvalid: 3,
}

const defaultMinStepsForFeedback = 2

// DefaultMinSteps returns the reference completion threshold for the given
// target. Unknown targets get the walk threshold, the least restrictive
// safe default.
func DefaultMinSteps(target journey.Type) int {
	if v, ok := defaultMinSteps[target]; ok {
		return v
	}
	return defaultMinSteps[journey.TypeWalk]
}

// withDefaults fills unset thresholds from the per-type table.
func (s Spec) withDefaults() Spec {
	if s.MinStepsToComplete <= 0 {
		s.MinStepsToComplete = DefaultMinSteps(s.Target)
	}
	if s.MinStepsForFeedback <= 0 {
		s.MinStepsForFeedback = defaultMinStepsForFeedback
	}
	return s
}
