package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"launchstate/internal/app"
	"launchstate/internal/launch"
)

func TestStatusNotRunning(t *testing.T) {
	withController(t, &stubController{})
	buf := withOutput(t, cmdStatus)

	if err := cmdStatus.RunE(cmdStatus, nil); err != nil {
		t.Fatalf("RunE error: %v", err)
	}
	if got := buf.String(); got != "Daemon is not running\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestStatusRunningWithOptions(t *testing.T) {
	withController(t, &stubController{
		status: app.DaemonStatus{Running: true, PID: 12, Command: "launchstate daemon"},
		snapshotFunc: func(ctx context.Context, timeout time.Duration) (launch.Snapshot, error) {
			return launch.Snapshot{
				Options:   launch.Options{"a": "b"},
				Present:   true,
				Revision:  2,
				UpdatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
			}, nil
		},
	})
	buf := withOutput(t, cmdStatus)

	if err := cmdStatus.RunE(cmdStatus, nil); err != nil {
		t.Fatalf("RunE error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Daemon running (pid 12): launchstate daemon") {
		t.Fatalf("missing daemon line in %q", out)
	}
	if !strings.Contains(out, "Launch options: 1 keys, revision 2, updated 2024-01-02T03:04:05Z") {
		t.Fatalf("missing options line in %q", out)
	}
}

func TestStatusUsesConfiguredTimeout(t *testing.T) {
	var got time.Duration
	withController(t, &stubController{
		status:         app.DaemonStatus{Running: true, PID: 12},
		requestTimeout: 7 * time.Second,
		snapshotFunc: func(ctx context.Context, timeout time.Duration) (launch.Snapshot, error) {
			got = timeout
			return launch.Snapshot{}, nil
		},
	})
	buf := withOutput(t, cmdStatus)

	if err := cmdStatus.RunE(cmdStatus, nil); err != nil {
		t.Fatalf("RunE error: %v", err)
	}
	if got != 7*time.Second {
		t.Fatalf("expected configured timeout 7s, got %v", got)
	}
	if !strings.Contains(buf.String(), "No launch options recorded") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestStopNotRunning(t *testing.T) {
	withController(t, &stubController{})
	buf := withOutput(t, cmdStop)

	if err := cmdStop.RunE(cmdStop, nil); err != nil {
		t.Fatalf("RunE error: %v", err)
	}
	if got := buf.String(); got != "Daemon is not running\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestStopForwardsForce(t *testing.T) {
	var forced bool
	withController(t, &stubController{
		status: app.DaemonStatus{Running: true, PID: 3},
		stopFunc: func(force bool) error {
			forced = force
			return nil
		},
	})
	withOutput(t, cmdStop)
	old := stopForce
	stopForce = true
	t.Cleanup(func() { stopForce = old })

	if err := cmdStop.RunE(cmdStop, nil); err != nil {
		t.Fatalf("RunE error: %v", err)
	}
	if !forced {
		t.Fatal("expected force to be forwarded")
	}
}
