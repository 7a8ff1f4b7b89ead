package daemon

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	launchstatev1 "launchstate/api/proto/launchstate/v1"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"
)

// Dial opens a gRPC connection to the daemon over the UNIX socket and waits
// until it is ready or ctx expires.
func Dial(ctx context.Context) (launchstatev1.LaunchStateClient, *grpc.ClientConn, error) {
	conn, err := grpc.NewClient(
		socketTarget(SocketPath()),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithContextDialer(unixDialer),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	)
	if err != nil {
		return nil, nil, err
	}
	conn.Connect()
	if err := waitForReady(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return launchstatev1.NewLaunchStateClient(conn), conn, nil
}

func socketTarget(path string) string {
	if trimmed, ok := strings.CutPrefix(path, "/"); ok {
		return "unix:///" + trimmed
	}
	return "unix://" + path
}

func unixDialer(ctx context.Context, addr string) (net.Conn, error) {
	if trimmed, ok := strings.CutPrefix(addr, "unix://"); ok {
		addr = trimmed
	}
	if addr == "" {
		addr = SocketPath()
	}
	var d net.Dialer
	return d.DialContext(ctx, "unix", addr)
}

func waitForReady(ctx context.Context, conn *grpc.ClientConn) error {
	for {
		switch state := conn.GetState(); state {
		case connectivity.Ready:
			return nil
		case connectivity.Shutdown:
			return errors.New("grpc connection is shut down")
		default:
			if !conn.WaitForStateChange(ctx, state) {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return fmt.Errorf("grpc connection stuck in state %s", state.String())
			}
		}
	}
}
