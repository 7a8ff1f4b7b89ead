package main

import (
	"errors"
	"fmt"
	"os"

	"launchstate/internal/app"
	"launchstate/internal/config"
	"launchstate/internal/launch"

	"github.com/spf13/cobra"
)

var (
	setTimeoutSeconds int
	setJSON           string
	setFile           string
)

func init() {
	rootCmd.AddCommand(cmdSet)
	cmdSet.Flags().IntVarP(&setTimeoutSeconds, "timeout", "t", 0, "Timeout in seconds for the set RPC (0 uses the configured request timeout)")
	cmdSet.Flags().StringVar(&setJSON, "json", "", "Launch options as a JSON object")
	cmdSet.Flags().StringVarP(&setFile, "file", "f", "", "Read launch options from a JSON file")
}

var cmdSet = &cobra.Command{
	Use:   "set [key=value ...]",
	Short: "Replace the daemon's launch options (a relaunch event)",
	Long: `Replaces the launch options held by the daemon. Nothing is merged: keys that
are not part of the new options are gone afterwards. Values given as key=value
keep their JSON type when they parse as JSON, otherwise they are strings.
Use --json '{}' to record an empty launch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := setOptionsFromInput(args, setJSON, setFile)
		if err != nil {
			return err
		}
		ctrl := controller()
		err = ctrl.SetLaunchOptions(cmd.Context(), app.SetParams{
			Options: opts,
			Timeout: requestTimeout(ctrl, setTimeoutSeconds),
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Launch options replaced (%d keys)\n", len(opts))
		return nil
	},
}

func setOptionsFromInput(args []string, rawJSON, file string) (launch.Options, error) {
	sources := 0
	for _, used := range []bool{len(args) > 0, rawJSON != "", file != ""} {
		if used {
			sources++
		}
	}
	switch {
	case sources == 0:
		return nil, errors.New("provide key=value pairs, --json or --file")
	case sources > 1:
		return nil, errors.New("key=value pairs, --json and --file are mutually exclusive")
	}

	switch {
	case rawJSON != "":
		opts, err := config.ParseOptionsJSON([]byte(rawJSON))
		if err != nil {
			return nil, fmt.Errorf("parse --json: %w", err)
		}
		return opts, nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		opts, err := config.ParseOptionsJSON(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		return opts, nil
	default:
		return app.ParseAssignments(args)
	}
}
