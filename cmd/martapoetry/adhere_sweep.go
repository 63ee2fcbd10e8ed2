package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bohara2000/MARTA-Poetry/internal/narrative"
	"github.com/bohara2000/MARTA-Poetry/internal/report"
)

func adhereSweepCmd() *cobra.Command {
	var influences []float64
	var saveReport bool
	cmd := &cobra.Command{
		Use:   "sweep <route-id>",
		Short: "Test one route across a range of story influence levels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdhereSweep(args[0], influences, saveReport)
		},
	}
	cmd.Flags().Float64SliceVar(&influences, "influences", nil, "Influence levels to test (default 0.1,0.3,0.5,0.7,0.9)")
	cmd.Flags().BoolVar(&saveReport, "report", false, "Write the full report to the reports directory")
	return cmd
}

func runAdhereSweep(routeID string, influences []float64, saveReport bool) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	g, err := openGraph(cfg)
	if err != nil {
		return err
	}

	evaluator := narrative.NewEvaluator(g, factAnalyzer{analyzer: newClient(cfg)})
	sweep, err := evaluator.Sweep(ctx, routeID, influences)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Route %s: avg adherence %.2f across %d levels\n", sweep.RouteID, sweep.AvgScore, len(sweep.Results))
	for _, result := range sweep.Results {
		fmt.Fprintf(os.Stdout, "  influence %.1f: %.2f (%s)\n", result.StoryInfluence, result.AvgScore, result.Result)
	}
	if sweep.Best != nil {
		fmt.Fprintf(os.Stdout, "Best:  influence %.1f (%.2f)\n", sweep.Best.StoryInfluence, sweep.Best.AvgScore)
	}
	if sweep.Worst != nil {
		fmt.Fprintf(os.Stdout, "Worst: influence %.1f (%.2f)\n", sweep.Worst.StoryInfluence, sweep.Worst.AvgScore)
	}

	if saveReport {
		path, err := report.NewWriter(cfg.Reports.Dir).SaveAdherenceReport(sweep)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Report written to %s\n", path)
	}
	return nil
}
