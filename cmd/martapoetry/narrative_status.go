package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func narrativeStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Summarize narrative roles and connections",
		RunE:  runNarrativeStatus,
	}
	return cmd
}

func runNarrativeStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	g, err := openGraph(cfg)
	if err != nil {
		return err
	}

	summary := g.Summarize()
	fmt.Fprintf(os.Stdout, "Core poems:            %d\n", summary.CorePoems)
	fmt.Fprintf(os.Stdout, "Extension poems:       %d\n", summary.ExtensionPoems)
	fmt.Fprintf(os.Stdout, "Variation poems:       %d\n", summary.VariationPoems)
	fmt.Fprintf(os.Stdout, "Route-generated poems: %d\n", summary.RouteGeneratedPoems)
	fmt.Fprintf(os.Stdout, "Unassigned poems:      %d\n", summary.UnassignedPoems)
	fmt.Fprintf(os.Stdout, "Connections:           %d\n", summary.Connections)

	if len(summary.CorePoemTitles) > 0 {
		fmt.Fprintln(os.Stdout, "\nCore storyline:")
		for _, title := range summary.CorePoemTitles {
			fmt.Fprintf(os.Stdout, "  - %s\n", title)
		}
	}
	if summary.LatestCorePoem != nil {
		fmt.Fprintf(os.Stdout, "\nLatest core poem: %s (%s)\n", summary.LatestCorePoem.Title, summary.LatestCorePoem.ID)
	}
	return nil
}
