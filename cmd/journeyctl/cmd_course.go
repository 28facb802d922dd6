package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/graphacademy/journey/internal/course"
	"github.com/graphacademy/journey/internal/journey"
)

var courseFlags struct {
	coursePath string
	eventsPath string
	exportPath string
}

var courseCmd = &cobra.Command{
	Use:   "course",
	Short: "Compile a course map and optionally export a traversal overlay",
	Long: `Course compiles a DOT course map and prints its vertices and bridges.

With an event trace, the compiled course is exported back to DOT with
visited vertices filled and crossed bridges numbered in traversal order.

Usage:
  journeyctl course -f pentagon.dot
  journeyctl course -f pentagon.dot --events trace.yaml --export overlay.dot`,
	RunE: runCourse,
}

func init() {
	f := courseCmd.Flags()
	f.StringVarP(&courseFlags.coursePath, "file", "f", "", "Path to course DOT file (required)")
	f.StringVar(&courseFlags.eventsPath, "events", "", "Path to event trace YAML for the overlay")
	f.StringVar(&courseFlags.exportPath, "export", "", "Write the traversal overlay DOT to this path")

	_ = courseCmd.MarkFlagRequired("file")
}

func runCourse(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(courseFlags.coursePath)
	if err != nil {
		return fmt.Errorf("read course: %w", err)
	}
	c, err := course.Compile(string(data))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Course: %s\n", c.Name)
	fmt.Fprintf(out, "Vertices (%d): %v\n", len(c.Vertices), c.Vertices)
	fmt.Fprintf(out, "Bridges (%d):\n", len(c.Bridges))
	for _, b := range c.Bridges {
		fmt.Fprintf(out, "  %-12s %s -> %s\n", b.ID, b.From, b.To)
	}

	if courseFlags.exportPath == "" {
		return nil
	}

	var steps []journey.Step
	if courseFlags.eventsPath != "" {
		events, err := loadEvents(courseFlags.eventsPath)
		if err != nil {
			return err
		}
		ledger := journey.NewLedger()
		for _, ev := range events {
			switch ev.Kind {
			case "vertex":
				ledger.RecordVertexVisit(ev.ID)
			case "edge":
				if err := ledger.RecordEdgeCrossing(ev.ID); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: dropped edge %q: %v\n", ev.ID, err)
				}
			}
		}
		steps = ledger.Steps()
	}

	dot, err := course.ExportDOT(c, steps)
	if err != nil {
		return err
	}
	if err := os.WriteFile(courseFlags.exportPath, []byte(dot), 0644); err != nil {
		return fmt.Errorf("write overlay: %w", err)
	}
	fmt.Fprintf(out, "Overlay: %s\n", courseFlags.exportPath)
	return nil
}
