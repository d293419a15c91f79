package live

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/Lumos-Labs-HQ/flashseed/internal/api"
	"github.com/Lumos-Labs-HQ/flashseed/internal/generator"
	"github.com/Lumos-Labs-HQ/flashseed/internal/report"
)

// Orders creates one order per tick between existing customers and
// restaurants, then asks the backend to refresh the admin chart.
type Orders struct {
	client Client
	gen    *generator.Generator
	log    *report.Logger
	now    func() time.Time

	mu          sync.Mutex
	seq         int
	customers   []api.Record
	restaurants []api.Record
	drivers     []api.Record
}

func NewOrders(client Client, gen *generator.Generator, log *report.Logger) *Orders {
	if gen == nil {
		gen = generator.New()
	}
	return &Orders{client: client, gen: gen, log: log, now: time.Now}
}

func (o *Orders) WithClock(now func() time.Time) *Orders {
	o.now = now
	return o
}

// Load fetches the records orders point at. It returns ErrNotEnoughData
// when there is nothing to order from or for.
func (o *Orders) Load(ctx context.Context) error {
	o.log.Info("🔄 Loading existing data for order generation...")

	customers, err := o.client.List(ctx, "customers-fake")
	if err != nil {
		return fmt.Errorf("failed to load customers: %w", err)
	}
	restaurants, err := o.client.List(ctx, "restaurants-fake")
	if err != nil {
		return fmt.Errorf("failed to load restaurants: %w", err)
	}
	drivers, err := o.client.List(ctx, "drivers")
	if err != nil {
		o.log.Info("ℹ️ No drivers available, orders will be created without drivers")
		drivers = nil
	}

	o.mu.Lock()
	o.customers, o.restaurants, o.drivers = customers, restaurants, drivers
	o.mu.Unlock()

	o.log.Success("Loaded: %d customers, %d restaurants, %d drivers", len(customers), len(restaurants), len(drivers))
	if len(customers) == 0 || len(restaurants) == 0 {
		return ErrNotEnoughData
	}
	return nil
}

// Tick is the live orders job.
func (o *Orders) Tick(ctx context.Context) error {
	o.mu.Lock()
	if len(o.customers) == 0 || len(o.restaurants) == 0 {
		o.mu.Unlock()
		return ErrNotEnoughData
	}
	o.seq++
	order := o.gen.LiveOrder(o.gen.Pick(o.customers), o.gen.Pick(o.restaurants), o.gen.Pick(o.drivers), o.seq)
	o.mu.Unlock()

	o.log.Info("\n📦 [%s] Creating new order...", o.now().Format(time.TimeOnly))
	o.log.Plain("🏪 Restaurant: %s", order.String("restaurant_id"))
	o.log.Plain("👤 Customer: %s", order.String("customer_id"))
	o.log.Plain("💰 Total: $%s", order.String("total_amount"))
	o.log.Plain("📊 Status: %s", order.String("status"))

	if _, err := o.client.Create(ctx, "orders", order); err != nil {
		o.log.Failure("create order", err)
		return err
	}
	o.log.Success("Order created successfully: %s", order.String("order_number"))

	o.updateChart(ctx)
	return nil
}

// updateChart is best effort; the order already exists.
func (o *Orders) updateChart(ctx context.Context) {
	now := o.now().UTC()
	q := url.Values{}
	q.Set("start_date", now.AddDate(0, 0, -7).Format(time.DateOnly))
	q.Set("end_date", now.Format(time.DateOnly))
	q.Set("period_type", "daily")

	if _, err := o.client.Post(ctx, "admin-chart/update", q, nil); err == nil {
		o.log.Plain("📊 Chart data updated to reflect new order")
	}
}
