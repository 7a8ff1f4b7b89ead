package app

import (
	"context"
	"fmt"
	"time"

	launchstatev1 "launchstate/api/proto/launchstate/v1"
	"launchstate/internal/launch"

	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// Snapshot fetches options together with revision and update time.
func (a *App) Snapshot(ctx context.Context, timeout time.Duration) (launch.Snapshot, error) {
	var snap launch.Snapshot
	err := a.withClient(ctx, timeout, func(ctx context.Context, client launchstatev1.LaunchStateClient) error {
		resp, err := client.GetSnapshot(ctx, &emptypb.Empty{})
		if err != nil {
			return fmt.Errorf("daemon snapshot RPC failed: %w", err)
		}
		snap = snapshotFromStruct(resp)
		return nil
	})
	return snap, err
}

func snapshotFromStruct(s *structpb.Struct) launch.Snapshot {
	fields := s.GetFields()
	snap := launch.Snapshot{
		Present:  fields[launchstatev1.SnapshotFieldPresent].GetBoolValue(),
		Revision: uint64(fields[launchstatev1.SnapshotFieldRevision].GetNumberValue()),
	}
	if ts := int64(fields[launchstatev1.SnapshotFieldUpdatedAt].GetNumberValue()); ts > 0 {
		snap.UpdatedAt = time.Unix(ts, 0).UTC()
	}
	if st := fields[launchstatev1.SnapshotFieldOptions].GetStructValue(); st != nil {
		snap.Options = launch.FromStruct(st)
	}
	return snap
}
