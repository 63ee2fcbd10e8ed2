package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func poemsShowCmd() *cobra.Command {
	var withText bool
	cmd := &cobra.Command{
		Use:   "show <poem-id>",
		Short: "Show one poem with its extracted metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPoemsShow(args[0], withText)
		},
	}
	cmd.Flags().BoolVar(&withText, "text", false, "Print the full poem text")
	return cmd
}

func runPoemsShow(id string, withText bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	g, err := openGraph(cfg)
	if err != nil {
		return err
	}

	poem := g.GetPoem(id)
	if poem == nil {
		return fmt.Errorf("poem not found: %s", id)
	}

	fmt.Fprintf(os.Stdout, "%s (%s)\n", poem.Title, poem.ID)
	fmt.Fprintf(os.Stdout, "Route: %s\n", poem.RouteID)
	if !poem.NarrativeRole.IsUnassigned() {
		fmt.Fprintf(os.Stdout, "Role: %s\n", poem.NarrativeRole)
	}
	if !poem.CreatedAt.IsZero() {
		fmt.Fprintf(os.Stdout, "Created: %s\n", poem.CreatedAt.Format("2006-01-02 15:04"))
	}
	printNames("Themes", poem.Themes)
	printNames("Imagery", poem.Imagery)
	printNames("Emotions", poem.Emotions)
	printNames("Sound devices", poem.SoundDevices)

	if len(poem.Connections) > 0 {
		fmt.Fprintln(os.Stdout, "Connections:")
		for _, conn := range poem.Connections {
			fmt.Fprintf(os.Stdout, "  -> %s (%s, strength %.2f)\n", conn.TargetID, conn.ConnectionType, conn.Strength)
		}
	}

	if withText {
		fmt.Fprintln(os.Stdout, "")
		fmt.Fprintln(os.Stdout, poem.Text)
	}
	return nil
}

func printNames(label string, names []string) {
	if len(names) == 0 {
		return
	}
	fmt.Fprintf(os.Stdout, "%s: %s\n", label, strings.Join(names, ", "))
}
