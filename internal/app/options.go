package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	launchstatev1 "launchstate/api/proto/launchstate/v1"
	"launchstate/internal/launch"

	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// GetParams configures a launch options read.
type GetParams struct {
	Timeout time.Duration
}

// GetResult carries the daemon's launch options. Present is false when the
// daemon has not recorded any yet; that is not an error.
type GetResult struct {
	Options launch.Options
	Present bool
}

// LaunchOptions fetches the options currently recorded by the daemon.
func (a *App) LaunchOptions(ctx context.Context, params GetParams) (GetResult, error) {
	var result GetResult
	err := a.withClient(ctx, params.Timeout, func(ctx context.Context, client launchstatev1.LaunchStateClient) error {
		v, err := client.GetLaunchOptions(ctx, &emptypb.Empty{})
		if err != nil {
			return fmt.Errorf("daemon get RPC failed: %w", err)
		}
		result = resultFromValue(v)
		return nil
	})
	return result, err
}

func resultFromValue(v *structpb.Value) GetResult {
	st, ok := v.GetKind().(*structpb.Value_StructValue)
	if !ok {
		return GetResult{}
	}
	return GetResult{Options: launch.FromStruct(st.StructValue), Present: true}
}

// SetParams configures a launch options write.
type SetParams struct {
	Options launch.Options
	Timeout time.Duration
}

// SetLaunchOptions replaces the daemon's launch options, as a relaunch event
// from the host would.
func (a *App) SetLaunchOptions(ctx context.Context, params SetParams) error {
	req, err := params.Options.ToStruct()
	if err != nil {
		return err
	}
	return a.withClient(ctx, params.Timeout, func(ctx context.Context, client launchstatev1.LaunchStateClient) error {
		if _, err := client.SetLaunchOptions(ctx, req); err != nil {
			return fmt.Errorf("daemon set RPC failed: %w", err)
		}
		return nil
	})
}

// ParseAssignments turns key=value arguments into launch options. Values that
// parse as JSON keep their JSON type; anything else is a string.
func ParseAssignments(args []string) (launch.Options, error) {
	opts := make(launch.Options, len(args))
	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q (want key=value)", arg)
		}
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			v = raw
		}
		opts[key] = v
	}
	return opts, nil
}
