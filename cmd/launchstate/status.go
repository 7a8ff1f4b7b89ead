package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(cmdStatus)
}

var cmdStatus = &cobra.Command{
	Use:   "status",
	Short: "Show whether the daemon runs and what it has recorded",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl := controller()
		out := cmd.OutOrStdout()

		status, err := ctrl.Status()
		if err != nil {
			return err
		}
		if !status.Running {
			fmt.Fprintln(out, "Daemon is not running")
			return nil
		}
		if status.Command != "" {
			fmt.Fprintf(out, "Daemon running (pid %d): %s\n", status.PID, status.Command)
		} else {
			fmt.Fprintf(out, "Daemon running (pid %d)\n", status.PID)
		}

		snap, err := ctrl.Snapshot(cmd.Context(), ctrl.RequestTimeout())
		if err != nil {
			return err
		}
		if !snap.Present {
			fmt.Fprintln(out, "No launch options recorded")
			return nil
		}
		fmt.Fprintf(out, "Launch options: %d keys, revision %d, updated %s\n",
			len(snap.Options), snap.Revision, snap.UpdatedAt.Format(time.RFC3339))
		return nil
	},
}
