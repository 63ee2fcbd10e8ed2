package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func narrativeConnectCmd() *cobra.Command {
	var connectionType string
	var strength float64
	var notes string
	cmd := &cobra.Command{
		Use:   "connect <source-id> <target-id>",
		Short: "Connect two poems in the narrative",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNarrativeConnect(args[0], args[1], connectionType, strength, notes)
		},
	}
	cmd.Flags().StringVar(&connectionType, "type", "narrative_extension", "Connection type")
	cmd.Flags().Float64Var(&strength, "strength", 1.0, "Connection strength from 0.0 to 1.0")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes on the connection")
	return cmd
}

func runNarrativeConnect(sourceID, targetID, connectionType string, strength float64, notes string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	g, err := openGraph(cfg)
	if err != nil {
		return err
	}

	if !g.CreateConnection(sourceID, targetID, connectionType, strength, notes) {
		return fmt.Errorf("both poems must exist: %s, %s", sourceID, targetID)
	}
	if err := g.Save(""); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Connected %s -> %s (%s).\n", sourceID, targetID, connectionType)
	return nil
}
