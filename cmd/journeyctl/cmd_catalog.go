package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/graphacademy/journey/internal/mission"
)

var catalogFlags struct {
	catalogPath string
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Validate and list a mission catalog",
	Long: `Catalog validates a mission catalog file and lists its missions with
their effective thresholds.

Usage:
  journeyctl catalog                      # built-in catalog
  journeyctl catalog -f missions.yaml`,
	RunE: runCatalog,
}

func init() {
	f := catalogCmd.Flags()
	f.StringVarP(&catalogFlags.catalogPath, "file", "f", "", "Path to mission catalog YAML (default: built-in catalog)")
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	catalog := mission.DefaultCatalog()
	if catalogFlags.catalogPath != "" {
		loaded, err := mission.LoadCatalog(catalogFlags.catalogPath)
		if err != nil {
			return err
		}
		catalog = loaded
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d mission(s)\n", len(catalog.Missions))
	for _, raw := range catalog.Missions {
		spec, _ := catalog.Get(raw.ID)
		fmt.Fprintf(out, "  %-24s target=%-8s feedback_at=%d complete_at=%d",
			spec.ID, spec.Target, spec.MinStepsForFeedback, spec.MinStepsToComplete)
		if spec.Cond != "" {
			fmt.Fprintf(out, " cond=%q", spec.Cond)
		}
		fmt.Fprintln(out)
	}
	return nil
}
