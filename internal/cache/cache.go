// Package cache keeps the last prepared snapshot of the backend collections
// so the auxiliary service does not re-seed on every request.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/Lumos-Labs-HQ/flashseed/internal/api"
	"github.com/Lumos-Labs-HQ/flashseed/internal/config"
)

const (
	DriverMemory = "memory"
	DriverRedis  = "redis"

	DefaultTTL = 5 * time.Minute
)

// Snapshot is the set of collections captured after a preparation run.
type Snapshot struct {
	Collections map[string][]api.Record `json:"collections"`
	PreparedAt  time.Time               `json:"prepared_at"`
}

// Counts returns the size of every collection in the snapshot.
func (s *Snapshot) Counts() map[string]int {
	out := make(map[string]int, len(s.Collections))
	for name, records := range s.Collections {
		out[name] = len(records)
	}
	return out
}

type Cache interface {
	// Get returns the snapshot and whether it is still fresh.
	Get(ctx context.Context) (*Snapshot, bool, error)
	Set(ctx context.Context, snap *Snapshot) error
	Invalidate(ctx context.Context) error
	Close() error
}

// New builds the cache selected by cfg.Driver.
func New(cfg config.Cache) (Cache, error) {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	switch cfg.Driver {
	case "", DriverMemory:
		return NewMemory(ttl), nil
	case DriverRedis:
		return NewRedis(RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      ttl,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported cache driver: %s", cfg.Driver)
	}
}
