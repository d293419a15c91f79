// Package scheduler runs jobs on a fixed interval with an explicit
// idle → running → stopped lifecycle.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Lumos-Labs-HQ/flashseed/internal/report"
)

var (
	ErrAlreadyRunning = errors.New("ticker already running")
	ErrStopped        = errors.New("ticker stopped")
)

type State int

const (
	StateIdle State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	default:
		return "stopped"
	}
}

// Job is one tick of work.
type Job func(ctx context.Context) error

// Stats is a point in time view of a Ticker.
type Stats struct {
	Name      string    `json:"name"`
	State     string    `json:"state"`
	Interval  string    `json:"interval"`
	Ticks     int       `json:"ticks"`
	Failures  int       `json:"failures"`
	LastError string    `json:"last_error,omitempty"`
	LastRun   time.Time `json:"last_run,omitempty"`
}

// Ticker runs a Job immediately on Start and then every interval.
type Ticker struct {
	name     string
	interval time.Duration
	job      Job
	clock    Clock
	log      *report.Logger

	mu       sync.Mutex
	state    State
	cancel   context.CancelFunc
	done     chan struct{}
	ticks    int
	failures int
	lastErr  error
	lastRun  time.Time
}

type Option func(*Ticker)

func WithClock(c Clock) Option {
	return func(t *Ticker) { t.clock = c }
}

func WithLogger(l *report.Logger) Option {
	return func(t *Ticker) { t.log = l }
}

func New(name string, interval time.Duration, job Job, opts ...Option) *Ticker {
	if interval <= 0 {
		interval = time.Second
	}
	t := &Ticker{
		name:     name,
		interval: interval,
		job:      job,
		clock:    RealClock(),
		log:      report.Discard(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Ticker) Name() string { return t.name }

// Start moves the ticker to running and returns at once. The loop ends when
// ctx is done or Stop is called.
func (t *Ticker) Start(ctx context.Context) error {
	t.mu.Lock()
	switch t.state {
	case StateRunning:
		t.mu.Unlock()
		return ErrAlreadyRunning
	case StateStopped:
		t.mu.Unlock()
		return ErrStopped
	}
	runCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.state = StateRunning
	t.mu.Unlock()

	t.log.Info("🚀 %s started, every %s", t.name, t.interval)
	go t.loop(runCtx)
	return nil
}

func (t *Ticker) loop(ctx context.Context) {
	defer close(t.done)
	defer t.markStopped()

	tick, stop := t.clock.Tick(t.interval)
	defer stop()

	t.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick:
			if ctx.Err() != nil {
				return
			}
			t.runOnce(ctx)
		}
	}
}

// runOnce lets an in-flight job finish after Stop; its outcome is dropped.
func (t *Ticker) runOnce(ctx context.Context) {
	err := t.job(context.WithoutCancel(ctx))

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StateRunning {
		return
	}
	t.ticks++
	t.lastRun = t.clock.Now()
	if err != nil {
		t.failures++
		t.lastErr = err
		t.log.Failure(t.name, err)
	}
}

func (t *Ticker) markStopped() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == StateRunning {
		t.log.Info("🛑 %s stopped after %d ticks", t.name, t.ticks)
	}
	t.state = StateStopped
}

// Stop ends the loop. Calling it on an idle ticker makes it unusable.
func (t *Ticker) Stop() {
	t.mu.Lock()
	cancel := t.cancel
	wasIdle := t.state == StateIdle
	if t.state == StateRunning {
		t.log.Info("🛑 %s stopped after %d ticks", t.name, t.ticks)
	}
	t.state = StateStopped
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if wasIdle {
		close(t.done)
	}
}

// Wait blocks until the loop has exited. It returns at once for a ticker
// that was never started.
func (t *Ticker) Wait() {
	t.mu.Lock()
	idle := t.state == StateIdle
	t.mu.Unlock()
	if idle {
		return
	}
	<-t.done
}

// Run starts the ticker and blocks until ctx is done.
func (t *Ticker) Run(ctx context.Context) error {
	if err := t.Start(ctx); err != nil {
		return err
	}
	t.Wait()
	return nil
}

func (t *Ticker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *Ticker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := Stats{
		Name:     t.name,
		State:    t.state.String(),
		Interval: t.interval.String(),
		Ticks:    t.ticks,
		Failures: t.failures,
		LastRun:  t.lastRun,
	}
	if t.lastErr != nil {
		s.LastError = t.lastErr.Error()
	}
	return s
}
