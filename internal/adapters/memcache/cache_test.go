package memcache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCache_SetGet(t *testing.T) {
	c := New(8, time.Hour)
	ctx := context.Background()

	if _, err := c.Get(ctx, "missing"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss, got %v", err)
	}

	val := []byte("sunset")
	if err := c.Set(ctx, "k", val, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	val[0] = 'S'

	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "sunset" {
		t.Errorf("expected stored copy to be unaffected, got %q", got)
	}
}

func TestCache_TTL(t *testing.T) {
	c := New(8, time.Hour)
	now := time.Date(2025, 12, 29, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	_ = c.Set(ctx, "k", []byte("v"), 10)
	now = now.Add(9 * time.Second)
	if _, err := c.Get(ctx, "k"); err != nil {
		t.Fatalf("expected live entry, got %v", err)
	}
	now = now.Add(time.Second)
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected expiry, got %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("expected expired entry to be removed, len=%d", c.Len())
	}
}

func TestCache_EvictsOldest(t *testing.T) {
	c := New(2, time.Hour)
	ctx := context.Background()
	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)
	_ = c.Set(ctx, "c", []byte("3"), 0)

	if _, err := c.Get(ctx, "a"); !errors.Is(err, ErrMiss) {
		t.Error("expected oldest entry to be evicted")
	}
	_ = c.Delete(ctx, "b")
	if c.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", c.Len())
	}
}
