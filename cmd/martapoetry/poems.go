package main

import "github.com/spf13/cobra"

func poemsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "poems",
		Short: "Browse the poem collection",
	}
	cmd.AddCommand(poemsListCmd())
	cmd.AddCommand(poemsShowCmd())
	cmd.AddCommand(poemsSearchCmd())
	cmd.AddCommand(poemsRelatedCmd())
	cmd.AddCommand(poemsRemoveCmd())
	return cmd
}
