package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/graphacademy/journey/internal/app"
	"github.com/graphacademy/journey/internal/mission"
)

var classifyFlags struct {
	eventsPath string
	coursePath string
}

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a recorded event trace",
	Long: `Classify reads a YAML event trace and reports the journey type.

Usage:
  journeyctl classify -f trace.yaml
  journeyctl classify -f trace.yaml --course pentagon.dot

With --course, events referencing vertices or bridges the course does
not define are reported as warnings.`,
	RunE: runClassify,
}

func init() {
	f := classifyCmd.Flags()
	f.StringVarP(&classifyFlags.eventsPath, "file", "f", "", "Path to event trace YAML (required)")
	f.StringVar(&classifyFlags.coursePath, "course", "", "Path to course DOT file")

	_ = classifyCmd.MarkFlagRequired("file")
}

func runClassify(cmd *cobra.Command, _ []string) error {
	events, err := loadEvents(classifyFlags.eventsPath)
	if err != nil {
		return err
	}

	var courseDOT string
	if classifyFlags.coursePath != "" {
		data, err := os.ReadFile(classifyFlags.coursePath)
		if err != nil {
			return fmt.Errorf("read course: %w", err)
		}
		courseDOT = string(data)
	}

	svc := app.NewService(mission.DefaultCatalog())
	res, err := svc.ClassifyEvents(courseDOT, events)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Type:      %s\n", res.Type)
	fmt.Fprintf(out, "Length:    %d\n", res.Length)
	fmt.Fprintf(out, "Anomalies: %d\n", res.Anomalies)
	for _, w := range res.Warnings {
		fmt.Fprintf(out, "Warning:   %s\n", w)
	}
	return nil
}
