package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bohara2000/MARTA-Poetry/internal/graph"
)

func statsCmd() *cobra.Command {
	var routeID string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show graph-wide or per-route statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(routeID)
		},
	}
	cmd.Flags().StringVar(&routeID, "route", "", "Route id to report on (default whole graph)")
	return cmd
}

func runStats(routeID string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	g, err := openGraph(cfg)
	if err != nil {
		return err
	}

	if routeID != "" {
		printRouteStats(g.RouteStatistics(routeID))
		return nil
	}

	summary := g.Summary()
	fmt.Fprintf(os.Stdout, "Poems:         %d\n", summary.TotalPoems)
	fmt.Fprintf(os.Stdout, "Themes:        %d\n", summary.TotalThemes)
	fmt.Fprintf(os.Stdout, "Imagery:       %d\n", summary.TotalImagery)
	fmt.Fprintf(os.Stdout, "Emotions:      %d\n", summary.TotalEmotions)
	fmt.Fprintf(os.Stdout, "Sound devices: %d\n", summary.TotalSoundDevices)
	fmt.Fprintf(os.Stdout, "Edges:         %d\n", summary.TotalEdges)
	fmt.Fprintf(os.Stdout, "Routes:        %d\n", summary.ContributingRoutes)

	for _, stats := range g.AllRouteStatistics() {
		fmt.Fprintln(os.Stdout, "")
		printRouteStats(stats)
	}
	return nil
}

func printRouteStats(stats graph.RouteStatistics) {
	fmt.Fprintf(os.Stdout, "Route %s: %d poems\n", stats.RouteID, stats.PoemCount)
	printTopCounts("themes", stats.Themes)
	printTopCounts("imagery", stats.Imagery)
	printTopCounts("emotions", stats.Emotions)
	printTopCounts("sound devices", stats.SoundDevices)
	if stats.Structure.AvgLineCount > 0 {
		fmt.Fprintf(os.Stdout, "  avg line count: %.1f\n", stats.Structure.AvgLineCount)
	}
	fmt.Fprintf(os.Stdout, "  structural diversity: %.2f\n", stats.StructuralDiversity)
}

func printTopCounts(label string, counts []graph.NameCount) {
	if len(counts) == 0 {
		return
	}
	limit := 5
	if len(counts) < limit {
		limit = len(counts)
	}
	fmt.Fprintf(os.Stdout, "  %s:", label)
	for _, item := range counts[:limit] {
		fmt.Fprintf(os.Stdout, " %s(%d)", item.Name, item.Count)
	}
	fmt.Fprintln(os.Stdout, "")
}
