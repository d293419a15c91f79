package cache

import (
	"context"
	"sync"
	"time"
)

type Memory struct {
	mu   sync.RWMutex
	ttl  time.Duration
	snap *Snapshot
	now  func() time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{ttl: ttl, now: time.Now}
}

// WithClock replaces the time source used for expiry.
func (m *Memory) WithClock(now func() time.Time) *Memory {
	m.now = now
	return m
}

func (m *Memory) Get(ctx context.Context) (*Snapshot, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.snap == nil {
		return nil, false, nil
	}
	fresh := m.now().Sub(m.snap.PreparedAt) < m.ttl
	return m.snap, fresh, nil
}

func (m *Memory) Set(ctx context.Context, snap *Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if snap.PreparedAt.IsZero() {
		snap.PreparedAt = m.now()
	}
	m.snap = snap
	return nil
}

func (m *Memory) Invalidate(ctx context.Context) error {
	m.mu.Lock()
	m.snap = nil
	m.mu.Unlock()
	return nil
}

func (m *Memory) Close() error { return nil }
