package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Lumos-Labs-HQ/flashseed/internal/api"
	"github.com/Lumos-Labs-HQ/flashseed/internal/config"
	"github.com/Lumos-Labs-HQ/flashseed/internal/report"
	"github.com/Lumos-Labs-HQ/flashseed/internal/seeder"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func backendClient(cfg *config.Config) *api.Client {
	return api.New(cfg.BaseURL, cfg.Timeout)
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// catalog applies the seed plan on top of the entities build returns.
func catalog(cfg *config.Config, build func(seeder.Options) []seeder.Entity) ([]seeder.Entity, error) {
	plan, err := config.LoadPlan(cfg.PlanFile)
	if err != nil {
		return nil, err
	}

	opts := seeder.Options{Minimum: cfg.Minimum, Delay: cfg.Delay}
	if plan.Minimum != nil {
		opts.Minimum = *plan.Minimum
	}
	return seeder.ApplyPlan(build(opts), plan)
}

func orchestrator(cfg *config.Config, log *report.Logger, entities []seeder.Entity) *seeder.Orchestrator {
	return seeder.NewOrchestrator(seeder.NewStep(backendClient(cfg), log), log, entities)
}
