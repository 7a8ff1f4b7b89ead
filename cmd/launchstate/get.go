package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"launchstate/internal/app"
	"launchstate/internal/launch"

	"github.com/spf13/cobra"
)

var (
	getTimeoutSeconds int
	getJSON           bool
)

func init() {
	rootCmd.AddCommand(cmdGet)
	cmdGet.Flags().IntVarP(&getTimeoutSeconds, "timeout", "t", 0, "Timeout in seconds for the get RPC (0 uses the configured request timeout)")
	cmdGet.Flags().BoolVar(&getJSON, "json", false, "Print the options as a JSON object (null when absent)")
}

var cmdGet = &cobra.Command{
	Use:   "get",
	Short: "Print the launch options recorded by the daemon",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl := controller()
		res, err := ctrl.LaunchOptions(cmd.Context(), app.GetParams{
			Timeout: requestTimeout(ctrl, getTimeoutSeconds),
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if getJSON {
			return printOptionsJSON(out, res)
		}
		if !res.Present {
			fmt.Fprintln(out, "No launch options recorded")
			return nil
		}
		if len(res.Options) == 0 {
			fmt.Fprintln(out, "Launch options are empty")
			return nil
		}
		printOptions(out, res.Options)
		return nil
	},
}

func printOptionsJSON(w io.Writer, res app.GetResult) error {
	var v any
	if res.Present {
		v = res.Options
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode launch options: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func printOptions(w io.Writer, opts launch.Options) {
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s=%s\n", k, formatValue(opts[k]))
	}
}

func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
