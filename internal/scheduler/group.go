package scheduler

import (
	"context"
	"fmt"
)

// Group starts and stops several tickers together.
type Group struct {
	tickers []*Ticker
}

func NewGroup(tickers ...*Ticker) *Group {
	return &Group{tickers: tickers}
}

func (g *Group) Add(t *Ticker) {
	g.tickers = append(g.tickers, t)
}

// Start starts every ticker. If one fails the ones already started are stopped.
func (g *Group) Start(ctx context.Context) error {
	for i, t := range g.tickers {
		if err := t.Start(ctx); err != nil {
			for _, started := range g.tickers[:i] {
				started.Stop()
			}
			return fmt.Errorf("failed to start %s: %w", t.Name(), err)
		}
	}
	return nil
}

func (g *Group) Stop() {
	for _, t := range g.tickers {
		t.Stop()
	}
}

func (g *Group) Wait() {
	for _, t := range g.tickers {
		t.Wait()
	}
}

func (g *Group) Stats() []Stats {
	out := make([]Stats, 0, len(g.tickers))
	for _, t := range g.tickers {
		out = append(out, t.Stats())
	}
	return out
}
