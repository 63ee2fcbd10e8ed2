package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "martapoetry",
		Short: "Knowledge-graph poetry project for MARTA transit routes",
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.AddCommand(initCmd())
	root.AddCommand(generateCmd())
	root.AddCommand(importCmd())
	root.AddCommand(poemsCmd())
	root.AddCommand(narrativeCmd())
	root.AddCommand(personalityCmd())
	root.AddCommand(adhereCmd())
	root.AddCommand(statsCmd())
	root.AddCommand(reportCmd())
	root.AddCommand(exportCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
