package main

import (
	"context"
	"log"
	"time"

	"launchstate/internal/app"
	"launchstate/internal/launch"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "launchstate [command]",
	Short: "launchstate: holds the options a process was launched with",
	Long: `launchstate runs a small daemon that records the launch options it was started
with (or re-activated with) and serves them to other processes.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to JSON config file")
}

// controllerAPI is the slice of app.App the commands use.
type controllerAPI interface {
	Ping(ctx context.Context, timeout time.Duration) (string, error)
	LaunchOptions(ctx context.Context, params app.GetParams) (app.GetResult, error)
	SetLaunchOptions(ctx context.Context, params app.SetParams) error
	Snapshot(ctx context.Context, timeout time.Duration) (launch.Snapshot, error)
	Status() (app.DaemonStatus, error)
	StopDaemon(force bool) error
	StartDaemon() (*app.DaemonHandle, error)
	RequestTimeout() time.Duration
}

var controllerFactory = func() controllerAPI {
	return app.New(app.Options{ConfigPath: configPath})
}

func controller() controllerAPI {
	return controllerFactory()
}

// requestTimeout honours an explicit --timeout and otherwise uses the
// configured request timeout.
func requestTimeout(ctrl controllerAPI, seconds int) time.Duration {
	if seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return ctrl.RequestTimeout()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
