package scheduler

import (
	"sync"
	"time"
)

// Clock is the time source of a Ticker.
type Clock interface {
	Now() time.Time
	// Tick delivers a value every d until stop is called.
	Tick(d time.Duration) (c <-chan time.Time, stop func())
}

type realClock struct{}

// RealClock is backed by the time package.
func RealClock() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Tick(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// FakeClock only moves when Advance is called.
type FakeClock struct {
	mu      sync.Mutex
	cond    *sync.Cond
	now     time.Time
	tickers map[*fakeTicker]struct{}
}

type fakeTicker struct {
	c      chan time.Time
	period time.Duration
	next   time.Time
}

func NewFakeClock(start time.Time) *FakeClock {
	f := &FakeClock{now: start, tickers: make(map[*fakeTicker]struct{})}
	f.cond = sync.NewCond(&f.mu)
	return f
}

func (f *FakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *FakeClock) Tick(d time.Duration) (<-chan time.Time, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t := &fakeTicker{c: make(chan time.Time, 1), period: d, next: f.now.Add(d)}
	f.tickers[t] = struct{}{}
	f.cond.Broadcast()

	stop := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.tickers, t)
		f.cond.Broadcast()
	}
	return t.c, stop
}

// Advance moves the clock forward and fires every ticker whose deadline
// passed. Like time.Ticker, a tick is dropped when the previous one has not
// been received yet.
func (f *FakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.now = f.now.Add(d)
	for t := range f.tickers {
		for !t.next.After(f.now) {
			select {
			case t.c <- t.next:
			default:
			}
			t.next = t.next.Add(t.period)
		}
	}
}

// BlockUntil waits until n tickers are registered.
func (f *FakeClock) BlockUntil(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for len(f.tickers) < n {
		f.cond.Wait()
	}
}

// Tickers returns the number of registered tickers.
func (f *FakeClock) Tickers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tickers)
}
