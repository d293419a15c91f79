// Package live holds the interval jobs that keep a demo backend busy:
// the auto generator, live orders, live chart metrics and the auxiliary
// service jobs. Each job is a plain func(ctx) error driven by a
// scheduler.Ticker.
package live

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/Lumos-Labs-HQ/flashseed/internal/api"
)

var ErrNotEnoughData = errors.New("not enough customers or restaurants to generate orders")

// Client is the subset of api.Client the jobs use.
type Client interface {
	List(ctx context.Context, path string) ([]api.Record, error)
	Create(ctx context.Context, path string, body any) (api.Record, error)
	Post(ctx context.Context, path string, query url.Values, body any) (*api.Envelope, error)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
