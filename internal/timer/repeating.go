package timer

import (
	"sync"
	"time"
)

// Repeating runs a callback once per interval until stopped. Each fire arms
// the next one before the callback runs, so a slow callback does not stretch
// the cadence; fires are spaced by the interval from the moment the previous
// one was dispatched rather than pinned to a fixed-rate grid.
type Repeating struct {
	// clock supplies the one-shot scheduling primitive.
	clock Clock
	// callback runs once per fire on the clock's goroutine.
	callback func()

	// mu protects the scheduling state below.
	mu sync.Mutex
	// interval is the period used by the next scheduling decision.
	interval time.Duration
	// running reports whether fires are being scheduled.
	running bool
	// pending is the cancel handle of the single armed fire, if any.
	pending Timer
	// generation invalidates fires dispatched before the latest Start.
	generation uint64
}

// Option configures a Repeating timer.
type Option func(*Repeating)

// WithClock substitutes the time source. A nil clock keeps the default.
func WithClock(clock Clock) Option {
	return func(r *Repeating) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// New creates a repeating timer that will invoke callback once per interval
// after Start is called. The interval must be positive; callers validate it
// before it reaches this package.
func New(interval time.Duration, callback func(), opts ...Option) *Repeating {
	r := &Repeating{
		clock:    SystemClock,
		callback: callback,
		interval: interval,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Start arms the first fire one interval from now.
// Starting an already-running timer is a no-op.
func (r *Repeating) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return
	}

	r.running = true
	r.generation++
	r.pending = r.schedule(r.generation)
}

// Stop cancels the armed fire and marks the timer stopped. It is safe to call
// on a stopped timer. A callback dispatched just before Stop may still run;
// callers gate its side effects with their own liveness check.
func (r *Repeating) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}

	r.running = false

	if r.pending != nil {
		r.pending.Stop()
		r.pending = nil
	}
}

// SetInterval changes the period used by the next scheduling decision.
// A fire already armed keeps its original deadline, so at most one stale
// cycle elapses before the new interval takes effect.
func (r *Repeating) SetInterval(interval time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.interval = interval
}

// Interval returns the period the next scheduling decision will use.
func (r *Repeating) Interval() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.interval
}

// Running reports whether the timer is scheduling fires.
func (r *Repeating) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.running
}

// schedule arms the clock for the next fire. Callers must hold mu.
func (r *Repeating) schedule(generation uint64) Timer {
	return r.clock.AfterFunc(r.interval, func() {
		r.fire(generation)
	})
}

// fire arms the next run and then invokes the callback outside the lock.
// Fires from a superseded generation, or arriving after Stop, return without
// side effects.
func (r *Repeating) fire(generation uint64) {
	r.mu.Lock()

	if !r.running || generation != r.generation {
		r.mu.Unlock()
		return
	}

	r.pending = r.schedule(generation)
	r.mu.Unlock()

	r.callback()
}
