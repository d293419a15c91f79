package live

import (
	"context"

	"github.com/Lumos-Labs-HQ/flashseed/internal/generator"
	"github.com/Lumos-Labs-HQ/flashseed/internal/report"
)

// Aux holds the jobs the auxiliary service runs on its own intervals.
type Aux struct {
	client Client
	gen    *generator.Generator
	log    *report.Logger
	auto   *Auto
}

func NewAux(client Client, gen *generator.Generator, log *report.Logger) *Aux {
	if gen == nil {
		gen = generator.New()
	}
	return &Aux{client: client, gen: gen, log: log, auto: NewAuto(client, gen, log)}
}

// Orders posts an order with random ids.
func (a *Aux) Orders(ctx context.Context) error {
	a.log.Info("🍔 Generating and sending fake order data...")
	if _, err := a.client.Create(ctx, "orders", a.gen.FakeOrder()); err != nil {
		a.log.Failure("send fake order", err)
		return err
	}
	a.log.Success("Fake order sent")
	return nil
}

// Users posts one customer or driver signup.
func (a *Aux) Users(ctx context.Context) error {
	path, body := a.gen.Signup()
	a.log.Info("👤 Generating %s signup...", path)
	if _, err := a.client.Create(ctx, path, body); err != nil {
		a.log.Failure("send "+path+" signup", err)
		return err
	}
	a.log.Success("Signup sent to /%s", path)
	return nil
}

func (a *Aux) CustomerCare(ctx context.Context) error {
	return a.auto.CustomerCare(ctx)
}

// Restaurants refreshes the dependencies and adds one restaurant.
func (a *Aux) Restaurants(ctx context.Context) error {
	if err := a.auto.Init(ctx); err != nil {
		return err
	}
	return a.auto.Restaurant(ctx)
}
