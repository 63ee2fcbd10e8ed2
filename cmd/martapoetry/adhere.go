package main

import "github.com/spf13/cobra"

func adhereCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "adhere",
		Short: "Test how closely a route's poems follow its narrative stance",
	}
	cmd.AddCommand(adhereSingleCmd())
	cmd.AddCommand(adhereSweepCmd())
	return cmd
}
