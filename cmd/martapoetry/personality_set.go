package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bohara2000/MARTA-Poetry/internal/personality"
)

func personalitySetCmd() *cobra.Command {
	var name string
	var description string
	var loyalty float64
	var mode string
	var sounds []string
	var themes []string
	cmd := &cobra.Command{
		Use:   "set <route-id>",
		Short: "Create or replace a route's personality",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPersonalitySet(args[0], name, description, loyalty, mode, sounds, themes)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Personality name (defaults to the route id)")
	cmd.Flags().StringVar(&description, "description", "", "One-line description of the route's voice")
	cmd.Flags().Float64Var(&loyalty, "loyalty", 0.5, "Loyalty to canon from 0.0 to 1.0")
	cmd.Flags().StringVar(&mode, "mode", "", "Rebellious mode: ignore, invert, or create_new")
	cmd.Flags().StringArrayVar(&sounds, "sound", nil, "Sound preference as device=weight, repeatable")
	cmd.Flags().StringArrayVar(&themes, "theme", nil, "Theme affinity as theme=weight, repeatable")
	return cmd
}

func runPersonalitySet(routeID, name, description string, loyalty float64, mode string, sounds, themes []string) error {
	if name == "" {
		name = "Route " + routeID
	}

	soundWeights, err := parseWeights(sounds)
	if err != nil {
		return fmt.Errorf("parsing --sound: %w", err)
	}
	themeWeights, err := parseWeights(themes)
	if err != nil {
		return fmt.Errorf("parsing --theme: %w", err)
	}

	p := personality.Personality{
		Name:             name,
		Description:      description,
		LoyaltyToCanon:   loyalty,
		RebelliousMode:   mode,
		SoundPreferences: soundWeights,
		ThemeAffinities:  themeWeights,
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openPersonalities(cfg)
	if err != nil {
		return err
	}

	if err := store.Set(routeID, p); err != nil {
		return err
	}
	if err := store.Save(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Saved personality for route %s.\n", routeID)
	for _, warning := range p.Warnings() {
		fmt.Fprintf(os.Stdout, "Warning: %s\n", warning)
	}
	return nil
}

func parseWeights(entries []string) (map[string]float64, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	weights := make(map[string]float64, len(entries))
	for _, entry := range entries {
		name, value, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("expected name=weight, got %q", entry)
		}
		weight, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("weight for %s: %w", name, err)
		}
		weights[name] = weight
	}
	return weights, nil
}
