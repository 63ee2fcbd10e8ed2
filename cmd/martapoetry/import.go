package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bohara2000/MARTA-Poetry/internal/ingest"
	"github.com/bohara2000/MARTA-Poetry/internal/llm"
)

func importCmd() *cobra.Command {
	var routeID string
	var overwrite bool
	var skipAnalysis bool
	cmd := &cobra.Command{
		Use:   "import <dir>",
		Short: "Import poem files from a directory into the graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(args[0], routeID, overwrite, skipAnalysis)
		},
	}
	cmd.Flags().StringVar(&routeID, "route", "", "Route assigned to files that don't name one (default MANUAL)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Re-import poems whose ids already exist")
	cmd.Flags().BoolVar(&skipAnalysis, "skip-analysis", false, "Import text only, without extracting themes")
	return cmd
}

func runImport(dir, routeID string, overwrite, skipAnalysis bool) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	g, err := openGraph(cfg)
	if err != nil {
		return err
	}

	var analyzer llm.Analyzer
	if !skipAnalysis {
		analyzer = newClient(cfg)
	}

	result, err := ingest.Run(ctx, g, analyzer, dir, ingest.Options{
		DefaultRouteID: routeID,
		Overwrite:      overwrite,
	})
	if err != nil {
		return err
	}

	if err := g.Save(""); err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "Import complete.")
	fmt.Fprintf(os.Stdout, "  Poems added:    %d\n", result.PoemsAdded)
	fmt.Fprintf(os.Stdout, "  Poems analyzed: %d\n", result.PoemsAnalyzed)
	fmt.Fprintf(os.Stdout, "  Files skipped:  %d\n", result.FilesSkipped)

	if len(result.Errors) > 0 {
		fmt.Fprintf(os.Stdout, "\nErrors (%d):\n", len(result.Errors))
		for _, item := range result.Errors {
			fmt.Fprintf(os.Stdout, "  - %v\n", item)
		}
		return fmt.Errorf("import completed with errors")
	}

	return nil
}
