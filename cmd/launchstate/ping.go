package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pingTimeoutSeconds int

func init() {
	rootCmd.AddCommand(cmdPing)
	cmdPing.Flags().IntVarP(&pingTimeoutSeconds, "timeout", "t", 0, "Timeout in seconds for daemon ping (0 uses the configured request timeout)")
}

var cmdPing = &cobra.Command{
	Use:   "ping",
	Short: "Check daemon availability (expects 'pong')",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl := controller()
		msg, err := ctrl.Ping(cmd.Context(), requestTimeout(ctrl, pingTimeoutSeconds))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}
