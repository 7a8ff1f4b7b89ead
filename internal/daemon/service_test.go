package daemon

import (
	"context"
	"net"
	"reflect"
	"testing"
	"time"

	launchstatev1 "launchstate/api/proto/launchstate/v1"
	"launchstate/internal/config"
	"launchstate/internal/launch"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

func startTestServer(t *testing.T, cfg config.Config) (*Server, *grpc.ClientConn) {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := NewServer(lis, launch.New(), cfg)
	go srv.Serve()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial bufconn: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
		if err := srv.Close(); err != nil {
			t.Errorf("close server: %v", err)
		}
	})
	return srv, conn
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func mustStruct(t *testing.T, m map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(m)
	if err != nil {
		t.Fatalf("NewStruct: %v", err)
	}
	return s
}

func TestServicePing(t *testing.T) {
	_, conn := startTestServer(t, config.Default())
	client := launchstatev1.NewLaunchStateClient(conn)

	resp, err := client.Ping(testContext(t), &emptypb.Empty{})
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if resp.GetValue() != "pong" {
		t.Fatalf("expected pong, got %q", resp.GetValue())
	}
}

func TestServiceLaunchScenario(t *testing.T) {
	_, conn := startTestServer(t, config.Default())
	client := launchstatev1.NewLaunchStateClient(conn)
	ctx := testContext(t)

	v, err := client.GetLaunchOptions(ctx, &emptypb.Empty{})
	if err != nil {
		t.Fatalf("GetLaunchOptions: %v", err)
	}
	if _, ok := v.GetKind().(*structpb.Value_NullValue); !ok {
		t.Fatalf("expected null before any write, got %v", v)
	}

	if _, err := client.SetLaunchOptions(ctx, mustStruct(t, map[string]any{"notificationId": "abc123"})); err != nil {
		t.Fatalf("SetLaunchOptions: %v", err)
	}
	v, err = client.GetLaunchOptions(ctx, &emptypb.Empty{})
	if err != nil {
		t.Fatalf("GetLaunchOptions: %v", err)
	}
	want := map[string]any{"notificationId": "abc123"}
	if got := v.GetStructValue().AsMap(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if _, err := client.SetLaunchOptions(ctx, mustStruct(t, map[string]any{})); err != nil {
		t.Fatalf("SetLaunchOptions: %v", err)
	}
	v, err = client.GetLaunchOptions(ctx, &emptypb.Empty{})
	if err != nil {
		t.Fatalf("GetLaunchOptions: %v", err)
	}
	sv := v.GetStructValue()
	if sv == nil {
		t.Fatalf("expected empty struct, got %v", v)
	}
	if n := len(sv.GetFields()); n != 0 {
		t.Fatalf("expected no fields after empty write, got %d", n)
	}
}

func TestServiceStartupOptionsRecorded(t *testing.T) {
	cfg := config.Default()
	cfg.LaunchOptions = launch.Options{"source": "push"}
	srv, conn := startTestServer(t, cfg)
	client := launchstatev1.NewLaunchStateClient(conn)

	snap, err := client.GetSnapshot(testContext(t), &emptypb.Empty{})
	if err != nil {
		t.Fatalf("GetSnapshot: %v", err)
	}
	fields := snap.GetFields()
	if !fields[launchstatev1.SnapshotFieldPresent].GetBoolValue() {
		t.Fatalf("expected present snapshot, got %v", snap)
	}
	if rev := fields[launchstatev1.SnapshotFieldRevision].GetNumberValue(); rev != 1 {
		t.Fatalf("expected revision 1, got %v", rev)
	}
	if fields[launchstatev1.SnapshotFieldUpdatedAt].GetNumberValue() <= 0 {
		t.Fatalf("expected update time, got %v", fields[launchstatev1.SnapshotFieldUpdatedAt])
	}
	got := fields[launchstatev1.SnapshotFieldOptions].GetStructValue().AsMap()
	if !reflect.DeepEqual(got, map[string]any{"source": "push"}) {
		t.Fatalf("unexpected options %v", got)
	}

	local, ok := srv.Holder().LaunchOptions()
	if !ok || local["source"] != "push" {
		t.Fatalf("holder not updated in-process: %v %v", local, ok)
	}
}

func TestServiceSnapshotAbsent(t *testing.T) {
	_, conn := startTestServer(t, config.Default())
	client := launchstatev1.NewLaunchStateClient(conn)

	snap, err := client.GetSnapshot(testContext(t), &emptypb.Empty{})
	if err != nil {
		t.Fatalf("GetSnapshot: %v", err)
	}
	fields := snap.GetFields()
	if fields[launchstatev1.SnapshotFieldPresent].GetBoolValue() {
		t.Fatalf("expected absent snapshot")
	}
	if _, ok := fields[launchstatev1.SnapshotFieldOptions].GetKind().(*structpb.Value_NullValue); !ok {
		t.Fatalf("expected null options, got %v", fields[launchstatev1.SnapshotFieldOptions])
	}
}

func TestServiceHealth(t *testing.T) {
	_, conn := startTestServer(t, config.Default())
	resp, err := healthpb.NewHealthClient(conn).Check(testContext(t), &healthpb.HealthCheckRequest{
		Service: launchstatev1.ServiceName,
	})
	if err != nil {
		t.Fatalf("health check: %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("expected SERVING, got %v", resp.GetStatus())
	}
}

func TestServiceSetRejectsNil(t *testing.T) {
	svc := newService(launch.New())
	_, err := svc.SetLaunchOptions(context.Background(), nil)
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestServiceGetRejectsUnencodable(t *testing.T) {
	h := launch.New()
	h.SetLaunchOptions(launch.Options{"ch": make(chan int)})
	svc := newService(h)
	_, err := svc.GetLaunchOptions(context.Background(), &emptypb.Empty{})
	if status.Code(err) != codes.Internal {
		t.Fatalf("expected Internal, got %v", err)
	}
}

func TestServerCloseIdempotent(t *testing.T) {
	srv := NewServer(bufconn.Listen(1024), nil, config.Config{ShutdownTimeout: time.Second})
	if srv.Holder() == nil {
		t.Fatal("expected a holder to be created")
	}
	if err := srv.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := srv.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
