package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
)

func personalityShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <route-id>",
		Short: "Show a route's personality",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPersonalityShow(args[0])
		},
	}
	return cmd
}

func runPersonalityShow(routeID string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openPersonalities(cfg)
	if err != nil {
		return err
	}

	p := store.Get(routeID)
	if !store.Has(routeID) {
		fmt.Fprintf(os.Stdout, "Route %s has no profile; showing the balanced default.\n\n", routeID)
	}

	fmt.Fprintf(os.Stdout, "Name: %s\n", p.Name)
	if p.Description != "" {
		fmt.Fprintf(os.Stdout, "Description: %s\n", p.Description)
	}
	fmt.Fprintf(os.Stdout, "Loyalty to canon: %.2f\n", p.LoyaltyToCanon)
	if p.RebelliousMode != "" {
		fmt.Fprintf(os.Stdout, "Rebellious mode: %s\n", p.RebelliousMode)
	}
	printWeights("Sound preferences", p.SoundPreferences)
	printWeights("Theme affinities", p.ThemeAffinities)

	for _, warning := range p.Warnings() {
		fmt.Fprintf(os.Stdout, "Warning: %s\n", warning)
	}
	return nil
}

func printWeights(label string, weights map[string]float64) {
	if len(weights) == 0 {
		return
	}
	names := make([]string, 0, len(weights))
	for name := range weights {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(os.Stdout, "%s:\n", label)
	for _, name := range names {
		fmt.Fprintf(os.Stdout, "  %s: %.2f\n", name, weights[name])
	}
}
