package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"google.golang.org/protobuf/types/known/emptypb"
)

const (
	// SocketBaseName is the UNIX socket filename inside the runtime dir.
	SocketBaseName = "launchstate.sock"
	pidFileName    = "launchstate.pid"

	EnvSocket     = "LAUNCHSTATE_SOCKET"
	EnvRuntimeDir = "LAUNCHSTATE_RUNTIME_DIR"
)

// SocketPath returns the full path to the daemon socket.
// Precedence (first wins):
//  1. LAUNCHSTATE_SOCKET
//  2. LAUNCHSTATE_RUNTIME_DIR/launchstate.sock
//  3. linux: $XDG_RUNTIME_DIR or /run/user/<uid>
//  4. elsewhere: /tmp/launchstate-<uid>.sock (short, sun_path is limited)
func SocketPath() string {
	if explicit := os.Getenv(EnvSocket); explicit != "" {
		return explicit
	}
	if rd := os.Getenv(EnvRuntimeDir); rd != "" {
		return filepath.Join(rd, SocketBaseName)
	}

	uid := currentUID()
	if runtime.GOOS == "linux" {
		if v := os.Getenv("XDG_RUNTIME_DIR"); v != "" {
			return filepath.Join(v, SocketBaseName)
		}
		return filepath.Join("/run/user", uid, SocketBaseName)
	}
	return filepath.Join("/tmp", "launchstate-"+uid+".sock")
}

// EnsureRuntimeDir creates the socket's parent directory if needed.
func EnsureRuntimeDir() error {
	return os.MkdirAll(filepath.Dir(SocketPath()), 0o700)
}

// PIDPath returns the pid file location, next to the socket.
func PIDPath() string {
	return filepath.Join(filepath.Dir(SocketPath()), pidFileName)
}

// WritePID stores pid in the pid file.
func WritePID(pid int) error {
	if err := EnsureRuntimeDir(); err != nil {
		return err
	}
	return os.WriteFile(PIDPath(), []byte(fmt.Sprintf("%d\n", pid)), 0o600)
}

// RemovePID removes the pid file; a missing file is not an error.
func RemovePID() error {
	if err := os.Remove(PIDPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// RunningPID returns the pid recorded in the pid file.
func RunningPID() (int, error) {
	data, err := os.ReadFile(PIDPath())
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parse pid file %s: %w", PIDPath(), err)
	}
	return pid, nil
}

// IsRunning reports whether a daemon answers Ping on the socket.
func IsRunning() bool {
	if _, err := os.Stat(SocketPath()); err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	client, conn, err := Dial(ctx)
	if err != nil {
		return false
	}
	defer conn.Close()

	_, err = client.Ping(ctx, &emptypb.Empty{})
	return err == nil
}

func currentUID() string {
	u, err := user.Current()
	if err == nil && u != nil && u.Uid != "" {
		return u.Uid
	}
	return "0"
}
