package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/dogwalk-skill/internal/ports"
)

func TestLocalCache_SetNX(t *testing.T) {
	c := NewLocalCache(time.Minute, zap.NewNop())
	defer c.Close()
	ctx := context.Background()

	ok, err := c.SetNX(ctx, "appointment:1", "pending", time.Minute)
	if err != nil || !ok {
		t.Fatalf("expected first SetNX to claim, got %v %v", ok, err)
	}
	ok, err = c.SetNX(ctx, "appointment:1", "pending", time.Minute)
	if err != nil || ok {
		t.Fatalf("expected second SetNX to be rejected, got %v %v", ok, err)
	}

	if err := c.Set(ctx, "appointment:1", "sent", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	val, err := c.Get(ctx, "appointment:1")
	if err != nil || val != "sent" {
		t.Errorf("expected 'sent', got %q %v", val, err)
	}
}

func TestLocalCache_Expiry(t *testing.T) {
	c := NewLocalCache(time.Minute, zap.NewNop())
	defer c.Close()
	ctx := context.Background()

	_ = c.Set(ctx, "k", "v", 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	if _, err := c.Get(ctx, "k"); !errors.Is(err, ports.ErrCacheMiss) {
		t.Errorf("expected cache miss after expiry, got %v", err)
	}
	ok, _ := c.SetNX(ctx, "k", "again", time.Minute)
	if !ok {
		t.Error("expected SetNX to reclaim an expired key")
	}
}

func TestLocalCache_MissAndDelete(t *testing.T) {
	c := NewLocalCache(time.Minute, zap.NewNop())
	ctx := context.Background()

	if _, err := c.Get(ctx, "absent"); !errors.Is(err, ports.ErrCacheMiss) {
		t.Errorf("expected cache miss, got %v", err)
	}
	_ = c.Set(ctx, "k", "v", 0)
	_ = c.Delete(ctx, "k")
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ports.ErrCacheMiss) {
		t.Errorf("expected cache miss after delete, got %v", err)
	}

	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
