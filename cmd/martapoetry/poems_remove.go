package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func poemsRemoveCmd() *cobra.Command {
	var keepOrphans bool
	cmd := &cobra.Command{
		Use:   "remove <poem-id>",
		Short: "Remove a poem and clean up orphaned entities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPoemsRemove(args[0], keepOrphans)
		},
	}
	cmd.Flags().BoolVar(&keepOrphans, "keep-orphans", false, "Leave entities in the graph even when no poem references them")
	return cmd
}

func runPoemsRemove(id string, keepOrphans bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	g, err := openGraph(cfg)
	if err != nil {
		return err
	}

	if !g.RemovePoem(id, !keepOrphans) {
		return fmt.Errorf("poem not found: %s", id)
	}
	if err := g.Save(""); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Removed %s.\n", id)
	return nil
}
