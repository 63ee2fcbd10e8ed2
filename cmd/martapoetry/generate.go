package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bohara2000/MARTA-Poetry/internal/graph"
	"github.com/bohara2000/MARTA-Poetry/internal/llm"
	"github.com/bohara2000/MARTA-Poetry/internal/prompt"
)

func generateCmd() *cobra.Command {
	var routeID string
	var count int
	var timeOfDay string
	var location string
	var passengers int
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate poems for a route using its personality",
		RunE: func(cmd *cobra.Command, args []string) error {
			if routeID == "" {
				return fmt.Errorf("--route is required")
			}
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}
			pctx := &prompt.Context{TimeOfDay: timeOfDay, Location: location, PassengerCount: passengers}
			return runGenerate(routeID, count, pctx, dryRun)
		},
	}
	cmd.Flags().StringVar(&routeID, "route", "", "Route id to generate for")
	cmd.Flags().IntVar(&count, "count", 1, "Number of poems to generate")
	cmd.Flags().StringVar(&timeOfDay, "time", "", "Time of day the poem is written under")
	cmd.Flags().StringVar(&location, "location", "", "Station or stretch of the route")
	cmd.Flags().IntVar(&passengers, "passengers", 0, "Passenger count on board")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the assembled prompt without calling the model")
	return cmd
}

func runGenerate(routeID string, count int, pctx *prompt.Context, dryRun bool) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	catalog, err := loadRoutes(cfg)
	if err != nil {
		return err
	}
	if catalog != nil && !catalog.IsValidRoute(routeID) {
		return fmt.Errorf("unknown route: %s", routeID)
	}

	g, err := openGraph(cfg)
	if err != nil {
		return err
	}

	store, err := openPersonalities(cfg)
	if err != nil {
		return err
	}

	builder := prompt.NewBuilder(g)
	p := store.Get(routeID)

	client := newClient(cfg)
	for i := 0; i < count; i++ {
		// Constraints are rebuilt per poem so each generation sees the
		// canon as the previous one left it.
		promptText, constraints := builder.BuildForRoute(routeID, p, pctx)
		if dryRun {
			fmt.Fprintln(os.Stdout, promptText)
			continue
		}

		generated, err := client.GeneratePoem(ctx, promptText)
		if err != nil {
			return err
		}

		// Keep the poem even when analysis fails; it can be re-analyzed
		// on a later import.
		analysis, err := client.AnalyzePoem(ctx, generated.Title, generated.Text)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: analyzing %q: %v\n", generated.Title, err)
			analysis = llm.Analysis{}
		}

		input := graph.PoemInput{
			ID:           "poem_" + uuid.NewString(),
			Title:        generated.Title,
			Text:         generated.Text,
			RouteID:      routeID,
			Themes:       analysis.Themes,
			Imagery:      analysis.Imagery,
			Emotions:     analysis.Emotions,
			SoundDevices: analysis.SoundDevices,
			Role:         graph.RoleRouteGenerated,
			Meta:         generationMeta(analysis, constraints, generated.Model, pctx),
		}
		if err := g.AddPoem(input); err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Generated %q (%s, %s)\n", generated.Title, input.ID, constraints.Approach)
	}

	if dryRun {
		return nil
	}
	return g.Save("")
}

func generationMeta(analysis llm.Analysis, constraints prompt.Constraints, model string, pctx *prompt.Context) graph.PoemMeta {
	meta := graph.PoemMeta{
		SoundPatterns: analysis.SoundMetadata,
		Generation: &graph.GenerationMeta{
			Strategy:  constraints.Approach,
			Model:     model,
			TimeOfDay: pctx.TimeOfDay,
			Location:  pctx.Location,
		},
	}
	if pctx.PassengerCount > 0 {
		meta.Generation.PassengerCount = fmt.Sprintf("%d", pctx.PassengerCount)
	}
	if analysis.Structure.LineCount > 0 {
		meta.Structure = &graph.StructureMeta{
			LineCount:    analysis.Structure.LineCount,
			LineLengths:  analysis.Structure.LineLengths,
			StanzaBreaks: analysis.Structure.StanzaBreaks,
		}
	}
	return meta
}
