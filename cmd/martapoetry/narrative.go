package main

import "github.com/spf13/cobra"

func narrativeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "narrative",
		Short: "Track the evolving story across poems",
	}
	cmd.AddCommand(narrativeStatusCmd())
	cmd.AddCommand(narrativeMarkCmd())
	cmd.AddCommand(narrativeClearCmd())
	cmd.AddCommand(narrativeConnectCmd())
	cmd.AddCommand(narrativeDisconnectCmd())
	cmd.AddCommand(narrativeRemoveRoleCmd())
	return cmd
}
