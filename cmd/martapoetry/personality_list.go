package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func personalityListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configured route personalities",
		RunE:  runPersonalityList,
	}
	return cmd
}

func runPersonalityList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openPersonalities(cfg)
	if err != nil {
		return err
	}

	if store.Len() == 0 {
		fmt.Fprintln(os.Stdout, "No personalities configured.")
		return nil
	}

	for _, routeID := range store.RouteIDs() {
		p := store.Get(routeID)
		line := fmt.Sprintf("%s  %s (loyalty %.2f)", routeID, p.Name, p.LoyaltyToCanon)
		if p.RebelliousMode != "" {
			line += fmt.Sprintf(" [%s]", p.RebelliousMode)
		}
		fmt.Fprintln(os.Stdout, line)
	}
	return nil
}
