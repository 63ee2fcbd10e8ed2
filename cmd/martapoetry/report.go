package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bohara2000/MARTA-Poetry/internal/report"
)

func reportCmd() *cobra.Command {
	var printOnly bool
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the full graph analysis report",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(printOnly)
		},
	}
	cmd.Flags().BoolVar(&printOnly, "print", false, "Print to stdout instead of the reports directory")
	return cmd
}

func runReport(printOnly bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	g, err := openGraph(cfg)
	if err != nil {
		return err
	}

	writer := report.NewWriter(cfg.Reports.Dir)
	if printOnly {
		fmt.Fprint(os.Stdout, writer.GraphReport(g))
		return nil
	}

	path, err := writer.SaveGraphReport(g)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Report written to %s\n", path)
	return nil
}
