package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Lumos-Labs-HQ/flashseed/internal/api"
	"github.com/Lumos-Labs-HQ/flashseed/internal/config"
	"github.com/alicebob/miniredis/v2"
)

func sampleSnapshot(at time.Time) *Snapshot {
	return &Snapshot{
		Collections: map[string][]api.Record{
			"customers":   {{"id": "c1"}, {"id": "c2"}},
			"restaurants": {{"id": "r1"}},
		},
		PreparedAt: at,
	}
}

func TestMemoryExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory(5 * time.Minute).WithClock(func() time.Time { return now })

	if _, fresh, _ := m.Get(ctx); fresh {
		t.Fatal("empty cache reported fresh")
	}

	if err := m.Set(ctx, sampleSnapshot(now)); err != nil {
		t.Fatal(err)
	}
	snap, fresh, err := m.Get(ctx)
	if err != nil || !fresh {
		t.Fatalf("expected fresh snapshot, got fresh=%v err=%v", fresh, err)
	}
	if snap.Counts()["customers"] != 2 {
		t.Errorf("unexpected counts %v", snap.Counts())
	}

	now = now.Add(5 * time.Minute)
	if _, fresh, _ := m.Get(ctx); fresh {
		t.Error("snapshot should be stale after the TTL")
	}

	_ = m.Invalidate(ctx)
	if snap, _, _ := m.Get(ctx); snap != nil {
		t.Error("expected nil snapshot after Invalidate")
	}
}

func TestRedisRoundTrip(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)

	c, err := New(config.Cache{Driver: DriverRedis, RedisAddr: srv.Addr(), TTL: time.Minute})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if _, fresh, err := c.Get(ctx); err != nil || fresh {
		t.Fatalf("expected miss, got fresh=%v err=%v", fresh, err)
	}

	if err := c.Set(ctx, sampleSnapshot(time.Now())); err != nil {
		t.Fatal(err)
	}
	snap, fresh, err := c.Get(ctx)
	if err != nil || !fresh {
		t.Fatalf("expected hit, got fresh=%v err=%v", fresh, err)
	}
	if got := snap.Collections["restaurants"][0].ID(); got != "r1" {
		t.Errorf("expected r1, got %q", got)
	}

	srv.FastForward(2 * time.Minute)
	if _, fresh, _ := c.Get(ctx); fresh {
		t.Error("expected key to expire")
	}
}

func TestUnknownDriver(t *testing.T) {
	if _, err := New(config.Cache{Driver: "memcached"}); err == nil {
		t.Error("expected error for unknown driver")
	}
}
