package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bohara2000/MARTA-Poetry/internal/narrative"
)

func adhereSingleCmd() *cobra.Command {
	var influence float64
	var detailed bool
	cmd := &cobra.Command{
		Use:   "single <route-id>",
		Short: "Test one route at one story influence level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if influence < 0 || influence > 1 {
				return fmt.Errorf("--influence must be between 0.0 and 1.0")
			}
			return runAdhereSingle(args[0], influence, detailed)
		},
	}
	cmd.Flags().Float64Var(&influence, "influence", 0.5, "Story influence from 0.0 to 1.0")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "Print per-poem scoring factors")
	return cmd
}

func runAdhereSingle(routeID string, influence float64, detailed bool) error {
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
	result, err := evaluator.EvaluateRoute(ctx, routeID, influence)
	if err != nil {
		return err
	}

	printRouteResult(result, detailed)
	return nil
}

func printRouteResult(result narrative.RouteResult, detailed bool) {
	fmt.Fprintf(os.Stdout, "Route %s at influence %.1f (%s)\n", result.RouteID, result.StoryInfluence, result.ExpectedStance)
	fmt.Fprintf(os.Stdout, "  Result:    %s\n", result.Result)
	fmt.Fprintf(os.Stdout, "  Avg score: %.2f over %d poems\n", result.AvgScore, result.PoemsAnalyzed)

	for _, poem := range result.Poems {
		if poem.Err != "" {
			fmt.Fprintf(os.Stdout, "  %-40s analysis failed: %s\n", poem.Title, poem.Err)
			continue
		}
		fmt.Fprintf(os.Stdout, "  %-40s %.2f\n", poem.Title, poem.Score)
		if !detailed {
			continue
		}
		for _, factor := range poem.Factors {
			fmt.Fprintf(os.Stdout, "    %s: %.2f (weight %.2f)\n", factor.Name, factor.Score, factor.Weight)
		}
	}
}
