package daemon

import (
	"context"

	launchstatev1 "launchstate/api/proto/launchstate/v1"
	"launchstate/internal/launch"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// service implements the LaunchState gRPC service on top of one holder.
type service struct {
	launchstatev1.UnimplementedLaunchStateServer

	holder *launch.Holder
}

func newService(holder *launch.Holder) *service {
	return &service{holder: holder}
}

func (s *service) Ping(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return wrapperspb.String("pong"), nil
}

// GetLaunchOptions answers null until something was recorded.
func (s *service) GetLaunchOptions(ctx context.Context, _ *emptypb.Empty) (*structpb.Value, error) {
	opts, ok := s.holder.LaunchOptions()
	if !ok {
		return structpb.NewNullValue(), nil
	}
	st, err := opts.ToStruct()
	if err != nil {
		return nil, status.Errorf(codes.Internal, "stored launch options: %v", err)
	}
	return structpb.NewStructValue(st), nil
}

func (s *service) SetLaunchOptions(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "launch options are required")
	}
	s.holder.SetLaunchOptions(launch.FromStruct(req))
	return &emptypb.Empty{}, nil
}

func (s *service) GetSnapshot(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	snap := s.holder.Snapshot()

	optsValue := structpb.NewNullValue()
	if snap.Present {
		st, err := snap.Options.ToStruct()
		if err != nil {
			return nil, status.Errorf(codes.Internal, "stored launch options: %v", err)
		}
		optsValue = structpb.NewStructValue(st)
	}

	var updated int64
	if !snap.UpdatedAt.IsZero() {
		updated = snap.UpdatedAt.Unix()
	}

	return &structpb.Struct{Fields: map[string]*structpb.Value{
		launchstatev1.SnapshotFieldPresent:   structpb.NewBoolValue(snap.Present),
		launchstatev1.SnapshotFieldRevision:  structpb.NewNumberValue(float64(snap.Revision)),
		launchstatev1.SnapshotFieldUpdatedAt: structpb.NewNumberValue(float64(updated)),
		launchstatev1.SnapshotFieldOptions:   optsValue,
	}}, nil
}
