package mission

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/graphacademy/journey/internal/journey"
	"github.com/graphacademy/journey/internal/mission/eval"
)

// Catalog is an ordered set of authored missions.
type Catalog struct {
	Missions []Spec `yaml:"missions"`
}

// LoadCatalog reads and validates a YAML mission catalog.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog parses and validates catalog YAML.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the catalog is usable: non-empty unique ids, recognized
// targets, sane thresholds, and conditions inside the supported grammar.
func (c *Catalog) Validate() error {
	if len(c.Missions) == 0 {
		return fmt.Errorf("catalog has no missions")
	}

	seen := make(map[string]bool, len(c.Missions))
	for i, m := range c.Missions {
		if m.ID == "" {
			return fmt.Errorf("mission %d: missing id", i)
		}
		if seen[m.ID] {
			return fmt.Errorf("duplicate mission id %q", m.ID)
		}
		seen[m.ID] = true

		if _, err := journey.ParseType(string(m.Target)); err != nil {
			return fmt.Errorf("mission %q: %w", m.ID, err)
		}
		if m.MinStepsToComplete < 0 {
			return fmt.Errorf("mission %q: negative min_steps_to_complete", m.ID)
		}
		if m.MinStepsForFeedback < 0 {
			return fmt.Errorf("mission %q: negative min_steps_for_feedback", m.ID)
		}
		if err := eval.Validate(m.Cond); err != nil {
			return fmt.Errorf("mission %q: invalid cond: %w", m.ID, err)
		}
	}
	return nil
}

// Get returns the mission with the given id, thresholds filled in.
func (c *Catalog) Get(id string) (Spec, bool) {
	for _, m := range c.Missions {
		if m.ID == id {
			return m.withDefaults(), true
		}
	}
	return Spec{}, false
}

// DefaultCatalog is the reference mission progression: one mission per
// journey type, in teaching order.
func DefaultCatalog() *Catalog {
	return &Catalog{Missions: []Spec{
		{
			ID:           "walk-anywhere",
			Target:       journey.TypeWalk,
			Briefing:     "Cross any three vertices. Every connected sequence is a walk.",
			CompleteText: "A walk allows any repetition of vertices and edges.",
		},
		{
			ID:           "trail-no-repeat-bridge",
			Target:       journey.TypeTrail,
			Briefing:     "Visit four vertices without crossing the same bridge twice.",
			CompleteText: "A trail never repeats an edge, though it may revisit a vertex.",
		},
		{
			ID:           "path-no-repeat-vertex",
			Target:       journey.TypePath,
			Briefing:     "Visit four vertices without returning to any of them.",
			CompleteText: "A path never repeats a vertex.",
		},
		{
			ID:           "circuit-return-home",
			Target:       journey.TypeCircuit,
			Briefing:     "Return to your starting vertex without reusing a bridge.",
			CompleteText: "A circuit is a trail that closes on its starting vertex.",
		},
		{
			ID:           "cycle-perfect-loop",
			Target:       journey.TypeCycle,
			Briefing:     "Close the loop visiting every vertex on it exactly once.",
			CompleteText: "A cycle is a path that closes on its starting vertex.",
		},
	}}
}
