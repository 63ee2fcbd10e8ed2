package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func poemsSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search poem titles and text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPoemsSearch(args[0])
		},
	}
	return cmd
}

func runPoemsSearch(query string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	g, err := openGraph(cfg)
	if err != nil {
		return err
	}

	poems := g.SearchPoems(query)
	if len(poems) == 0 {
		fmt.Fprintln(os.Stdout, "No poems found.")
		return nil
	}

	for _, poem := range poems {
		fmt.Fprintf(os.Stdout, "%s  %s [route %s]\n", poem.ID, poem.Title, poem.RouteID)
	}
	return nil
}
