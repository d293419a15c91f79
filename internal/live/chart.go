package live

import (
	"context"
	"net/http"
	"time"

	"github.com/Lumos-Labs-HQ/flashseed/internal/api"
	"github.com/Lumos-Labs-HQ/flashseed/internal/generator"
	"github.com/Lumos-Labs-HQ/flashseed/internal/report"
)

// Chart inserts a fresh admin chart row through the auxiliary service and
// falls back to the backend's update endpoint.
type Chart struct {
	aux     Client
	backend Client
	gen     *generator.Generator
	log     *report.Logger
	now     func() time.Time
}

func NewChart(aux, backend Client, gen *generator.Generator, log *report.Logger) *Chart {
	if gen == nil {
		gen = generator.New()
	}
	return &Chart{aux: aux, backend: backend, gen: gen, log: log, now: time.Now}
}

func (c *Chart) WithClock(now func() time.Time) *Chart {
	c.now = now
	return c
}

// Tick is the live chart job.
func (c *Chart) Tick(ctx context.Context) error {
	metrics := c.gen.ChartMetrics(c.now())
	c.log.Info("📊 [%s] Generating new chart data...", c.now().Format(time.TimeOnly))
	c.log.Plain("👥 Total Users: %s", metrics.String("total_users"))
	c.log.Plain("📦 Order Volume: %s", metrics.String("order_volume"))
	c.log.Plain("📈 Sold Promotions: %s", metrics.String("sold_promotions"))

	_, err := c.aux.Post(ctx, "direct-db-insert/admin-chart", nil, metrics)
	if err == nil {
		c.log.Success("Chart data inserted directly into database!")
		c.log.Plain("📊 Record ID: %s", metrics.ID())
		return nil
	}

	switch {
	case api.IsRefused(err):
		c.log.Error("Error inserting chart data: auxiliary service is not running at %s", c.auxURL())
		c.log.Plain("💡 Start it first: flashseed serve")
		return err
	case api.StatusOf(err) == http.StatusNotFound:
		c.log.Error("Direct database insertion endpoint not found")
	default:
		c.log.Failure("insert chart data", err)
	}

	c.log.Plain("💡 Falling back to admin-chart/update endpoint...")
	return c.fallback(ctx)
}

func (c *Chart) fallback(ctx context.Context) error {
	start := dayStart(c.now())
	body := map[string]any{
		"startDate":  start,
		"endDate":    start + 24*3600 - 1,
		"periodType": "daily",
	}
	if _, err := c.backend.Post(ctx, "admin-chart/update", nil, body); err != nil {
		c.log.Failure("fallback chart update", err)
		return err
	}
	c.log.Success("Chart data generated via admin-chart/update")
	return nil
}

func (c *Chart) auxURL() string {
	if b, ok := c.aux.(interface{ BaseURL() string }); ok {
		return b.BaseURL()
	}
	return "the configured aux_url"
}

// dayStart returns the unix start of the UTC day containing t.
func dayStart(t time.Time) int64 {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Unix()
}
