package live

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Lumos-Labs-HQ/flashseed/internal/cache"
	"github.com/Lumos-Labs-HQ/flashseed/internal/generator"
	"github.com/Lumos-Labs-HQ/flashseed/internal/report"
	"github.com/Lumos-Labs-HQ/flashseed/internal/seeder"
)

// Runner runs one batch population.
type Runner interface {
	Run(ctx context.Context, run *seeder.Run) ([]seeder.Result, error)
}

// Preparer makes sure the backend has data and keeps the resulting
// collections in a cache so repeated requests do not re-seed.
type Preparer struct {
	runner Runner
	cache  cache.Cache
	gen    *generator.Generator
	log    *report.Logger

	mu sync.Mutex
}

func NewPreparer(runner Runner, c cache.Cache, gen *generator.Generator, log *report.Logger) *Preparer {
	return &Preparer{runner: runner, cache: c, gen: gen, log: log}
}

// Snapshot returns the cached collections, running a preparation first
// when the cache is empty or stale or force is set.
func (p *Preparer) Snapshot(ctx context.Context, force bool) (*cache.Snapshot, error) {
	if !force {
		if snap, fresh, err := p.cache.Get(ctx); err == nil && fresh {
			return snap, nil
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// another caller may have prepared while we waited
	if !force {
		if snap, fresh, err := p.cache.Get(ctx); err == nil && fresh {
			return snap, nil
		}
	}

	p.log.Info("🔄 Preparing data collections...")
	run := seeder.NewRun(p.gen)
	if _, err := p.runner.Run(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to prepare data: %w", err)
	}

	snap := &cache.Snapshot{Collections: run.Snapshot(), PreparedAt: time.Now()}
	if err := p.cache.Set(ctx, snap); err != nil {
		p.log.Warn("Failed to cache prepared data: %v", err)
	}
	p.log.Success("Data preparation complete")
	return snap, nil
}
