package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/graphacademy/journey/internal/journey"
	"github.com/graphacademy/journey/internal/mission"
)

var replayFlags struct {
	eventsPath  string
	missionID   string
	catalogPath string
}

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay an event trace against a mission",
	Long: `Replay drives the mission state machine with a recorded event trace
and prints every journey type transition along the way.

Usage:
  journeyctl replay -f trace.yaml --mission cycle-perfect-loop
  journeyctl replay -f trace.yaml --mission my-mission --catalog missions.yaml`,
	RunE: runReplay,
}

func init() {
	f := replayCmd.Flags()
	f.StringVarP(&replayFlags.eventsPath, "file", "f", "", "Path to event trace YAML (required)")
	f.StringVar(&replayFlags.missionID, "mission", "", "Mission id to replay against (required)")
	f.StringVar(&replayFlags.catalogPath, "catalog", "", "Path to mission catalog YAML (default: built-in catalog)")

	_ = replayCmd.MarkFlagRequired("file")
	_ = replayCmd.MarkFlagRequired("mission")
}

// printObserver writes machine notifications to the command output.
type printObserver struct {
	out io.Writer
}

func (o *printObserver) OnTypeChanged(previous, current journey.Type) {
	fmt.Fprintf(o.out, "  type: %s -> %s\n", previous, current)
}

func (o *printObserver) OnCompleted(spec mission.Spec, result journey.Type, length int) {
	fmt.Fprintf(o.out, "  completed: mission %s as %s at length %d\n", spec.ID, result, length)
}

func runReplay(cmd *cobra.Command, _ []string) error {
	events, err := loadEvents(replayFlags.eventsPath)
	if err != nil {
		return err
	}

	catalog := mission.DefaultCatalog()
	if replayFlags.catalogPath != "" {
		catalog, err = mission.LoadCatalog(replayFlags.catalogPath)
		if err != nil {
			return err
		}
	}
	spec, ok := catalog.Get(replayFlags.missionID)
	if !ok {
		return fmt.Errorf("unknown mission %q", replayFlags.missionID)
	}

	out := cmd.OutOrStdout()
	m := mission.NewMachine(mission.WithDebounce(0))
	m.Subscribe(&printObserver{out: out})
	if err := m.Start(spec); err != nil {
		return err
	}

	fmt.Fprintf(out, "Mission: %s (target %s, complete at %d steps)\n",
		spec.ID, spec.Target, spec.MinStepsToComplete)
	for _, ev := range events {
		fmt.Fprintf(out, "%s %s\n", ev.Kind, ev.ID)
		switch ev.Kind {
		case "vertex":
			err = m.VertexVisited(ev.ID)
		case "edge":
			err = m.EdgeCrossed(ev.ID)
		}
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "Result: %s, length %d, state %s\n",
		m.JourneyType(), m.JourneyLength(), m.State())
	return nil
}
