// Package launchstatev1 holds the LaunchState gRPC contract. Every message is
// a protobuf well-known type, so the descriptors are written out here
// directly instead of being generated.
package launchstatev1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "launchstate.v1.LaunchState"

const (
	LaunchState_Ping_FullMethodName             = "/launchstate.v1.LaunchState/Ping"
	LaunchState_GetLaunchOptions_FullMethodName = "/launchstate.v1.LaunchState/GetLaunchOptions"
	LaunchState_SetLaunchOptions_FullMethodName = "/launchstate.v1.LaunchState/SetLaunchOptions"
	LaunchState_GetSnapshot_FullMethodName      = "/launchstate.v1.LaunchState/GetSnapshot"
)

// Snapshot field names used in GetSnapshot responses.
const (
	SnapshotFieldPresent   = "present"
	SnapshotFieldRevision  = "revision"
	SnapshotFieldUpdatedAt = "updated_at_unix"
	SnapshotFieldOptions   = "options"
)

// LaunchStateClient is the client API for the LaunchState service.
type LaunchStateClient interface {
	Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	GetLaunchOptions(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Value, error)
	SetLaunchOptions(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	GetSnapshot(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type launchStateClient struct {
	cc grpc.ClientConnInterface
}

// NewLaunchStateClient wraps a connection (or any ClientConnInterface).
func NewLaunchStateClient(cc grpc.ClientConnInterface) LaunchStateClient {
	return &launchStateClient{cc}
}

func (c *launchStateClient) Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, LaunchState_Ping_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *launchStateClient) GetLaunchOptions(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Value, error) {
	out := new(structpb.Value)
	if err := c.cc.Invoke(ctx, LaunchState_GetLaunchOptions_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *launchStateClient) SetLaunchOptions(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, LaunchState_SetLaunchOptions_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *launchStateClient) GetSnapshot(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, LaunchState_GetSnapshot_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// LaunchStateServer is the server API for the LaunchState service.
// Implementations must embed UnimplementedLaunchStateServer.
type LaunchStateServer interface {
	Ping(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	GetLaunchOptions(context.Context, *emptypb.Empty) (*structpb.Value, error)
	SetLaunchOptions(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	GetSnapshot(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	mustEmbedUnimplementedLaunchStateServer()
}

// UnimplementedLaunchStateServer answers every method with codes.Unimplemented.
type UnimplementedLaunchStateServer struct{}

func (UnimplementedLaunchStateServer) Ping(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

func (UnimplementedLaunchStateServer) GetLaunchOptions(context.Context, *emptypb.Empty) (*structpb.Value, error) {
	return nil, status.Error(codes.Unimplemented, "method GetLaunchOptions not implemented")
}

func (UnimplementedLaunchStateServer) SetLaunchOptions(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method SetLaunchOptions not implemented")
}

func (UnimplementedLaunchStateServer) GetSnapshot(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSnapshot not implemented")
}

func (UnimplementedLaunchStateServer) mustEmbedUnimplementedLaunchStateServer() {}

// RegisterLaunchStateServer attaches srv to the gRPC registrar.
func RegisterLaunchStateServer(s grpc.ServiceRegistrar, srv LaunchStateServer) {
	s.RegisterService(&LaunchState_ServiceDesc, srv)
}

func pingHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LaunchStateServer).Ping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: LaunchState_Ping_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LaunchStateServer).Ping(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func getLaunchOptionsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LaunchStateServer).GetLaunchOptions(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: LaunchState_GetLaunchOptions_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LaunchStateServer).GetLaunchOptions(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func setLaunchOptionsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LaunchStateServer).SetLaunchOptions(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: LaunchState_SetLaunchOptions_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LaunchStateServer).SetLaunchOptions(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func getSnapshotHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LaunchStateServer).GetSnapshot(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: LaunchState_GetSnapshot_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LaunchStateServer).GetSnapshot(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// LaunchState_ServiceDesc describes the LaunchState service for grpc.Server.
var LaunchState_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LaunchStateServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: pingHandler},
		{MethodName: "GetLaunchOptions", Handler: getLaunchOptionsHandler},
		{MethodName: "SetLaunchOptions", Handler: setLaunchOptionsHandler},
		{MethodName: "GetSnapshot", Handler: getSnapshotHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "launchstate/v1/launchstate.proto",
}
