package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func TestReady_AllHealthy(t *testing.T) {
	// Arrange
	svc := NewService("v1", newTestLogger())
	svc.RegisterChecker("cache", PingChecker(func(context.Context) error { return nil }, newTestLogger()))
	svc.RegisterChecker("customer-profile", BreakerChecker(func() string { return "closed" }))

	// Act
	resp := svc.Ready(context.Background())

	// Assert
	if !resp.Ready || resp.Status != StatusHealthy {
		t.Errorf("expected ready and healthy, got %v %s", resp.Ready, resp.Status)
	}
	if len(resp.Checks) != 2 || resp.Checks["cache"].Name != "cache" {
		t.Errorf("unexpected checks %+v", resp.Checks)
	}
}

func TestReady_OpenBreakerIsDegraded(t *testing.T) {
	svc := NewService("v1", newTestLogger())
	svc.RegisterChecker("customer-profile", BreakerChecker(func() string { return "open" }))

	resp := svc.Ready(context.Background())

	if !resp.Ready {
		t.Error("expected degraded instance to stay ready")
	}
	if resp.Status != StatusDegraded {
		t.Errorf("expected degraded, got %s", resp.Status)
	}
}

func TestReady_FailedPingIsUnhealthy(t *testing.T) {
	svc := NewService("v1", newTestLogger())
	svc.RegisterChecker("cache", PingChecker(func(context.Context) error { return errors.New("connection refused") }, newTestLogger()))
	svc.RegisterChecker("customer-profile", BreakerChecker(func() string { return "half-open" }))

	resp := svc.Ready(context.Background())

	if resp.Ready {
		t.Error("expected not ready")
	}
	if resp.Status != StatusUnhealthy {
		t.Errorf("expected unhealthy, got %s", resp.Status)
	}
	if resp.Checks["cache"].Message != "ping failed: connection refused" {
		t.Errorf("unexpected message %q", resp.Checks["cache"].Message)
	}
}

func TestHealth(t *testing.T) {
	resp := NewService("v1.2.3", newTestLogger()).Health(context.Background())

	if resp.Status != StatusHealthy || resp.Version != "v1.2.3" {
		t.Errorf("unexpected health response %+v", resp)
	}
}

func TestReady_PingStopsAtCheckTimeout(t *testing.T) {
	// Arrange
	svc := NewService("v1", newTestLogger())
	svc.SetCheckTimeout(50 * time.Millisecond)
	svc.RegisterChecker("cache", PingChecker(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}, newTestLogger()))

	// Act
	done := make(chan *ReadyResponse, 1)
	go func() { done <- svc.Ready(context.Background()) }()

	// Assert
	select {
	case resp := <-done:
		if resp.Ready {
			t.Error("expected timed out ping to make the instance unready")
		}
		if resp.Checks["cache"].Message != "ping failed: context deadline exceeded" {
			t.Errorf("unexpected message %q", resp.Checks["cache"].Message)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Ready did not return after the check timeout")
	}
}

func TestReady_PingSeesCallerCancellation(t *testing.T) {
	svc := NewService("v1", newTestLogger())
	var seen error
	svc.RegisterChecker("nats", PingChecker(func(ctx context.Context) error {
		seen = ctx.Err()
		return seen
	}, newTestLogger()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	resp := svc.Ready(ctx)

	if !errors.Is(seen, context.Canceled) {
		t.Errorf("expected ping to receive the canceled context, got %v", seen)
	}
	if resp.Checks["nats"].Status != StatusUnhealthy {
		t.Errorf("expected unhealthy, got %s", resp.Checks["nats"].Status)
	}
}
