package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bohara2000/MARTA-Poetry/internal/graph"
)

func narrativeMarkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mark <poem-id> <role>",
		Short: "Assign a narrative role to a poem",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNarrativeMark(args[0], args[1])
		},
	}
	return cmd
}

func runNarrativeMark(id, roleName string) error {
	role := graph.Role(roleName)
	known := false
	for _, candidate := range graph.Roles {
		if role == candidate {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown role: %s", roleName)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	g, err := openGraph(cfg)
	if err != nil {
		return err
	}

	if !g.MarkRole(id, role) {
		return fmt.Errorf("poem not found: %s", id)
	}
	if err := g.Save(""); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Marked %s as %s.\n", id, role)
	return nil
}
