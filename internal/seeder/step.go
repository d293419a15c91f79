package seeder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Lumos-Labs-HQ/flashseed/internal/api"
	"github.com/Lumos-Labs-HQ/flashseed/internal/report"
)

// Step tops up one collection at a time.
type Step struct {
	client Collections
	log    *report.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

func NewStep(client Collections, log *report.Logger) *Step {
	if log == nil {
		log = report.Discard()
	}
	return &Step{client: client, log: log, sleep: sleepCtx}
}

// WithSleep replaces the inter-call delay, mainly for tests.
func (s *Step) WithSleep(fn func(ctx context.Context, d time.Duration) error) *Step {
	s.sleep = fn
	return s
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

func (s *Step) list(ctx context.Context, e Entity) []api.Record {
	records, err := s.client.List(ctx, e.listPath())
	if err != nil {
		s.log.Failure(fmt.Sprintf("list %s (treating as empty)", e.Name), err)
		return []api.Record{}
	}
	return records
}

// EnsureMinimum makes sure e has at least e.Minimum records. Individual
// create failures are logged and skipped. The returned error is non-nil only
// when ctx is done, a create fails with ErrAbort or a critical entity ends
// up empty.
func (s *Step) EnsureMinimum(ctx context.Context, e Entity, run *Run) (Result, error) {
	res := Result{Entity: e.Name, Failures: make(map[api.Kind]int)}

	records := s.list(ctx, e)
	res.Before = len(records)
	res.Records = records
	run.Set(e.Name, records)

	if len(records) >= e.Minimum {
		s.log.Info("📝 %s: %d records (minimum %d), nothing to do", e.Name, len(records), e.Minimum)
		return res, s.checkCritical(e, res)
	}

	needed := e.target() - len(records)
	s.log.Info("🔄 %s: %d records, creating %d...", e.Name, len(records), needed)

	for i := 0; i < needed; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if i > 0 {
			if err := s.sleep(ctx, e.Delay); err != nil {
				return res, err
			}
		}

		rec, err := s.createOne(ctx, e, run, i)
		switch {
		case errors.Is(err, ErrSkip):
			res.Skipped++
			continue
		case errors.Is(err, ErrAbort):
			res.Attempted++
			res.Failed++
			res.Failures[api.Classify(err)]++
			s.log.Failure(fmt.Sprintf("%s %d/%d", e.Name, i+1, needed), err)
			return res, fmt.Errorf("%s: %w", e.Name, err)
		case err != nil:
			res.Attempted++
			res.Failed++
			res.Failures[api.Classify(err)]++
			s.log.Failure(fmt.Sprintf("%s %d/%d", e.Name, i+1, needed), err)
			continue
		}
		res.Attempted++
		res.Created++
		run.Append(e.Name, rec)
		s.log.Success("%s %d/%d: %s", e.Name, i+1, needed, rec.DisplayName())
	}

	if res.Skipped > 0 {
		s.log.Warn("%s: skipped %d records, dependencies %v are empty", e.Name, res.Skipped, e.DependsOn)
	}

	if res.Created > 0 || res.Attempted > 0 {
		refreshed, err := s.client.List(ctx, e.listPath())
		if err != nil {
			s.log.Failure(fmt.Sprintf("refresh %s", e.Name), err)
			refreshed = run.Collection(e.Name)
		}
		res.Records = refreshed
		run.Set(e.Name, refreshed)
	}
	s.log.Info("🎉 %s now has %d records", e.Name, len(res.Records))

	return res, s.checkCritical(e, res)
}

func (s *Step) createOne(ctx context.Context, e Entity, run *Run, i int) (api.Record, error) {
	if e.Create != nil {
		return e.Create(ctx, s.client, run, i)
	}
	if e.Generate == nil {
		return nil, ErrSkip
	}
	body, ok := e.Generate(run, i)
	if !ok {
		return nil, ErrSkip
	}
	return s.client.Create(ctx, e.Path, body)
}

func (s *Step) checkCritical(e Entity, res Result) error {
	if e.Critical && len(res.Records) == 0 {
		return fmt.Errorf("%s: %w", e.Name, ErrCriticalEmpty)
	}
	return nil
}
