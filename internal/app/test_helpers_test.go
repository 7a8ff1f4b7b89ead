package app

import (
	"context"
	"errors"
	"io"
	"testing"

	launchstatev1 "launchstate/api/proto/launchstate/v1"

	"google.golang.org/grpc"
)

type fakeConn struct {
	invoke func(ctx context.Context, method string, args interface{}, reply interface{}, opts ...grpc.CallOption) error
}

func (f *fakeConn) Invoke(ctx context.Context, method string, args interface{}, reply interface{}, opts ...grpc.CallOption) error {
	if f.invoke != nil {
		return f.invoke(ctx, method, args, reply, opts...)
	}
	return nil
}

func (f *fakeConn) NewStream(ctx context.Context, desc *grpc.StreamDesc, method string, opts ...grpc.CallOption) (grpc.ClientStream, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeConn) Close() error { return nil }

func stubDaemon(t *testing.T, running bool, dial func(context.Context) (launchstatev1.LaunchStateClient, io.Closer, error)) {
	t.Helper()
	resetDaemonDeps()
	daemonIsRunning = func() bool { return running }
	if dial == nil {
		dial = func(context.Context) (launchstatev1.LaunchStateClient, io.Closer, error) {
			return nil, nil, errors.New("dial not stubbed")
		}
	}
	dialDaemonClient = dial
	t.Cleanup(resetDaemonDeps)
}

// stubInvoke routes every RPC through fn on a fake connection.
func stubInvoke(t *testing.T, fn func(method string, args, reply interface{}) error) {
	t.Helper()
	stubDaemon(t, true, func(context.Context) (launchstatev1.LaunchStateClient, io.Closer, error) {
		conn := &fakeConn{
			invoke: func(ctx context.Context, method string, args interface{}, reply interface{}, opts ...grpc.CallOption) error {
				return fn(method, args, reply)
			},
		}
		return launchstatev1.NewLaunchStateClient(conn), conn, nil
	})
}
