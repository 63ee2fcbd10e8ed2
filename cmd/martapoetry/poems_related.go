package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func poemsRelatedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "related <poem-id>",
		Short: "Rank poems by shared themes, imagery, and emotions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPoemsRelated(args[0])
		},
	}
	return cmd
}

func runPoemsRelated(id string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	g, err := openGraph(cfg)
	if err != nil {
		return err
	}

	if g.GetPoem(id) == nil {
		return fmt.Errorf("poem not found: %s", id)
	}

	related := g.RelatedPoems(id)
	if len(related) == 0 {
		fmt.Fprintln(os.Stdout, "No related poems found.")
		return nil
	}

	for _, item := range related {
		fmt.Fprintf(os.Stdout, "%s  %s (%d shared: %s)\n",
			item.Poem.ID, item.Poem.Title, item.SharedCount, strings.Join(item.Shared, ", "))
	}
	return nil
}
