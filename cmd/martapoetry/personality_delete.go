package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func personalityDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <route-id>",
		Short: "Delete a route's personality",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPersonalityDelete(args[0])
		},
	}
	return cmd
}

func runPersonalityDelete(routeID string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openPersonalities(cfg)
	if err != nil {
		return err
	}

	if !store.Delete(routeID) {
		return fmt.Errorf("route %s has no personality", routeID)
	}
	if err := store.Save(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Deleted personality for route %s.\n", routeID)
	return nil
}
