package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Lumos-Labs-HQ/flashseed/internal/report"
)

// Orchestrator runs every entity's step once, in dependency order.
type Orchestrator struct {
	entities map[string]Entity
	graph    *DependencyGraph
	step     *Step
	log      *report.Logger
}

func NewOrchestrator(step *Step, log *report.Logger, entities []Entity) *Orchestrator {
	if log == nil {
		log = report.Discard()
	}
	o := &Orchestrator{
		entities: make(map[string]Entity, len(entities)),
		graph:    NewDependencyGraph(),
		step:     step,
		log:      log,
	}
	for _, e := range entities {
		o.entities[e.Name] = e
		o.graph.Add(e.Name, e.DependsOn...)
	}
	return o
}

// Order returns the insertion order.
func (o *Orchestrator) Order() ([]string, error) {
	return o.graph.BuildOrder()
}

// Run executes every enabled step. It stops early when ctx is done or a
// critical entity is empty; the results gathered so far are still returned.
func (o *Orchestrator) Run(ctx context.Context, run *Run) ([]Result, error) {
	order, err := o.Order()
	if err != nil {
		return nil, fmt.Errorf("failed to build insertion order: %w", err)
	}

	o.log.Info("🌱 Starting population of %d collections", len(order))
	o.log.Info("📋 Insertion order: %s", strings.Join(order, " → "))

	var results []Result
	for i, name := range order {
		e := o.entities[name]
		if e.Disabled {
			o.log.Warn("%s is disabled, skipping", name)
			continue
		}

		o.log.Info("\n🔸 Step %d/%d: %s", i+1, len(order), name)
		res, err := o.step.EnsureMinimum(ctx, e, run)
		results = append(results, res)
		run.addResult(res)
		if err != nil {
			switch {
			case errors.Is(err, ErrCriticalEmpty):
				o.log.Error("%s has no records after its step, aborting", name)
			case errors.Is(err, ErrAbort):
				o.log.Error("%s could not be created, aborting", name)
			}
			o.summary(results)
			return results, err
		}
	}

	o.summary(results)
	o.log.Success("Population completed")
	return results, nil
}

func (o *Orchestrator) summary(results []Result) {
	rows := make([]report.Row, 0, len(results))
	for _, r := range results {
		rows = append(rows, report.Row{Name: r.Entity, Count: r.Count()})
	}
	o.log.Plain("")
	o.log.Table("Final counts", rows)
}

// Writes totals the create requests issued across results.
func Writes(results []Result) int {
	n := 0
	for _, r := range results {
		n += r.Attempted
	}
	return n
}
