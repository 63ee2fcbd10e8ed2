package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bohara2000/MARTA-Poetry/internal/graph"
)

func poemsListCmd() *cobra.Command {
	var routeID string
	var role string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List poems in the graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPoemsList(routeID, role)
		},
	}
	cmd.Flags().StringVar(&routeID, "route", "", "Route id to filter")
	cmd.Flags().StringVar(&role, "role", "", "Narrative role to filter")
	return cmd
}

func runPoemsList(routeID, role string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	g, err := openGraph(cfg)
	if err != nil {
		return err
	}

	var poems []*graph.PoemView
	if role != "" {
		for _, poem := range g.PoemsByRole(graph.Role(role)) {
			if routeID == "" || poem.RouteID == routeID {
				poems = append(poems, poem)
			}
		}
	} else {
		poems = g.Poems(routeID)
	}

	if len(poems) == 0 {
		fmt.Fprintln(os.Stdout, "No poems found.")
		return nil
	}

	for _, poem := range poems {
		line := fmt.Sprintf("%s  %s [route %s]", poem.ID, poem.Title, poem.RouteID)
		if !poem.NarrativeRole.IsUnassigned() {
			line += fmt.Sprintf(" (%s)", poem.NarrativeRole)
		}
		fmt.Fprintln(os.Stdout, line)
	}
	return nil
}
