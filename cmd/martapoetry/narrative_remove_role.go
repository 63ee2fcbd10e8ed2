package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bohara2000/MARTA-Poetry/internal/graph"
)

func narrativeRemoveRoleCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "remove-role <role>",
		Short: "Remove every poem holding a narrative role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNarrativeRemoveRole(args[0], yes)
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Commit the removal instead of previewing it")
	return cmd
}

func runNarrativeRemoveRole(roleName string, yes bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	g, err := openGraph(cfg)
	if err != nil {
		return err
	}

	plan := g.PlanRemovalByRole(graph.Role(roleName))
	if len(plan) == 0 {
		fmt.Fprintf(os.Stdout, "No poems hold role %s.\n", roleName)
		return nil
	}

	fmt.Fprintf(os.Stdout, "Poems with role %s (%d):\n", roleName, len(plan))
	for _, candidate := range plan {
		fmt.Fprintf(os.Stdout, "  - %s  %s\n", candidate.ID, candidate.Title)
	}

	if !yes {
		fmt.Fprintln(os.Stdout, "\nRe-run with --yes to remove them.")
		return nil
	}

	ids := make([]string, len(plan))
	for i, candidate := range plan {
		ids[i] = candidate.ID
	}
	removed := g.RemovePoems(ids)
	if err := g.Save(""); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "\nRemoved %d poems.\n", removed)
	return nil
}
