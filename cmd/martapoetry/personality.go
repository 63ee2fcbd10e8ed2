package main

import "github.com/spf13/cobra"

func personalityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "personality",
		Short: "Manage per-route creative personalities",
	}
	cmd.AddCommand(personalityListCmd())
	cmd.AddCommand(personalityShowCmd())
	cmd.AddCommand(personalitySetCmd())
	cmd.AddCommand(personalityDeleteCmd())
	return cmd
}
