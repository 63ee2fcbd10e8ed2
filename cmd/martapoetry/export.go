package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/bohara2000/MARTA-Poetry/internal/export"
)

func exportCmd() *cobra.Command {
	var format string
	var outDir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the collection for analysis outside the graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(format, outDir)
		},
	}
	cmd.Flags().StringVar(&format, "format", "all", "One of all, poems, connections, summary, text")
	cmd.Flags().StringVar(&outDir, "out", "exports", "Directory to write export files to")
	return cmd
}

func runExport(format, outDir string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	g, err := openGraph(cfg)
	if err != nil {
		return err
	}

	exporter := export.New(g, outDir)

	if format == "all" {
		paths, err := exporter.All()
		if err != nil {
			return err
		}
		names := make([]string, 0, len(paths))
		for name := range paths {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(os.Stdout, "Wrote %s\n", paths[name])
		}
		return nil
	}

	var path string
	switch format {
	case "poems":
		path, err = exporter.PoemsCSV()
	case "connections":
		path, err = exporter.ConnectionsCSV()
	case "summary":
		path, err = exporter.SummaryJSON()
	case "text":
		path, err = exporter.PoemsText()
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Wrote %s\n", path)
	return nil
}
