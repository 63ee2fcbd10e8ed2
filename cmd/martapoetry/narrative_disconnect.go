package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func narrativeDisconnectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disconnect <source-id> <target-id>",
		Short: "Remove a narrative connection between two poems",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNarrativeDisconnect(args[0], args[1])
		},
	}
	return cmd
}

func runNarrativeDisconnect(sourceID, targetID string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	g, err := openGraph(cfg)
	if err != nil {
		return err
	}

	if !g.RemoveConnection(sourceID, targetID) {
		return fmt.Errorf("no narrative connection from %s to %s", sourceID, targetID)
	}
	if err := g.Save(""); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Disconnected %s -> %s.\n", sourceID, targetID)
	return nil
}
