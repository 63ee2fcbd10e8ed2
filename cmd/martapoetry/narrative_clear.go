package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func narrativeClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear <poem-id>",
		Short: "Clear a poem's narrative role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNarrativeClear(args[0])
		},
	}
	return cmd
}

func runNarrativeClear(id string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	g, err := openGraph(cfg)
	if err != nil {
		return err
	}

	if !g.ClearRole(id) {
		return fmt.Errorf("poem not found: %s", id)
	}
	if err := g.Save(""); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Cleared role on %s.\n", id)
	return nil
}
