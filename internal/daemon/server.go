package daemon

import (
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"sync"
	"syscall"
	"time"

	launchstatev1 "launchstate/api/proto/launchstate/v1"
	"launchstate/internal/config"
	"launchstate/internal/launch"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Server owns the holder and serves it over gRPC.
type Server struct {
	ln     net.Listener
	path   string // socket to unlink on Close; empty for caller-owned listeners
	ownPID bool

	grpc   *grpc.Server
	health *health.Server
	holder *launch.Holder

	shutdownTimeout time.Duration
	unsubscribe     func()

	closeOnce sync.Once
	closeErr  error
}

// NewServer wires a holder into a gRPC server on ln. It does not start
// serving; call Serve.
func NewServer(ln net.Listener, holder *launch.Holder, cfg config.Config) *Server {
	if holder == nil {
		holder = launch.New()
	}
	gs := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	hs := health.NewServer()
	launchstatev1.RegisterLaunchStateServer(gs, newService(holder))
	healthpb.RegisterHealthServer(gs, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(launchstatev1.ServiceName, healthpb.HealthCheckResponse_SERVING)

	s := &Server{
		ln:              ln,
		grpc:            gs,
		health:          hs,
		holder:          holder,
		shutdownTimeout: cfg.ShutdownTimeout,
	}
	s.unsubscribe = holder.Subscribe(func(snap launch.Snapshot) {
		log.Printf("launch options recorded (revision %d, %d keys)", snap.Revision, len(snap.Options))
	})
	if cfg.LaunchOptions != nil {
		holder.SetLaunchOptions(cfg.LaunchOptions)
	}
	return s
}

// StartDaemon binds the UNIX socket, records the configured launch options
// as the startup launch event and serves in the background.
func StartDaemon(cfg config.Config) (*Server, error) {
	if err := EnsureRuntimeDir(); err != nil {
		return nil, fmt.Errorf("create runtime dir: %w", err)
	}
	path := SocketPath()

	// Stale socket from a daemon that died without cleanup.
	if _, err := os.Stat(path); err == nil && !IsRunning() {
		if err := os.Remove(path); err != nil {
			return nil, err
		}
	}

	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, err
	}
	if err := os.Chmod(path, 0o600); err != nil {
		ln.Close()
		return nil, err
	}

	s := NewServer(ln, launch.New(), cfg)
	s.path = path
	if err := WritePID(os.Getpid()); err != nil {
		s.Close()
		return nil, err
	}
	s.ownPID = true

	go func() {
		if err := s.Serve(); err != nil {
			log.Printf("daemon serve: %v", err)
		}
	}()
	return s, nil
}

// Serve blocks until the server stops.
func (s *Server) Serve() error {
	err := s.grpc.Serve(s.ln)
	if errors.Is(err, grpc.ErrServerStopped) {
		return nil
	}
	return err
}

// Holder exposes the daemon's holder to in-process collaborators.
func (s *Server) Holder() *launch.Holder {
	return s.holder
}

// Close stops serving, unlinks the socket and removes the pid file.
func (s *Server) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.close()
	})
	return s.closeErr
}

func (s *Server) close() error {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.health.Shutdown()
	s.stopGRPC()
	// Serve closes ln itself; this covers a server that never served.
	_ = s.ln.Close()

	if s.path != "" {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	if s.ownPID {
		return RemovePID()
	}
	return nil
}

// stopGRPC drains in-flight RPCs, forcing a stop after shutdownTimeout.
func (s *Server) stopGRPC() {
	timeout := s.shutdownTimeout
	if timeout <= 0 {
		timeout = config.Default().ShutdownTimeout
	}
	done := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		s.grpc.Stop()
		<-done
	}
}

// StopRunningDaemon signals the daemon recorded in the pid file to exit.
// With force, a daemon that ignores SIGTERM is killed.
func StopRunningDaemon(force bool) error {
	pid, err := RunningPID()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if IsRunning() {
				return fmt.Errorf("daemon is running but PID file %q is missing; stop it manually", PIDPath())
			}
			return nil
		}
		return fmt.Errorf("unable to read daemon PID: %w", err)
	}
	if pid == os.Getpid() {
		return errors.New("refusing to stop current process")
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	if err := sendSignal(proc, syscall.SIGTERM); err != nil {
		return err
	}
	if waitForShutdown(3 * time.Second) {
		return nil
	}
	if !force {
		return fmt.Errorf("daemon process %d did not exit after SIGTERM", pid)
	}
	if err := sendSignal(proc, syscall.SIGKILL); err != nil {
		return err
	}
	if waitForShutdown(2 * time.Second) {
		return nil
	}
	return fmt.Errorf("daemon process %d did not exit after SIGKILL", pid)
}

func sendSignal(proc *os.Process, sig syscall.Signal) error {
	if err := proc.Signal(sig); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			_ = RemovePID()
			return nil
		}
		return err
	}
	return nil
}

func waitForShutdown(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if !IsRunning() {
			_ = RemovePID()
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(100 * time.Millisecond)
	}
}
