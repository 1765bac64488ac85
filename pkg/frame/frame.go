// Package frame schedules callbacks on rendering frames and coalesces
// bursts of triggers into at most one pending invocation per frame.
package frame

import (
	"sync"
	"sync/atomic"
)

// Scheduler runs a callback on the next frame.
type Scheduler interface {
	RequestFrame(fn func())
}

// Queue is a Scheduler whose frames are driven by explicit Tick calls.
type Queue struct {
	mu      sync.Mutex
	pending []func()
}

func (q *Queue) RequestFrame(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, fn)
}

// Tick runs the callbacks requested before the tick and returns how many ran.
// Callbacks requested while ticking wait for the next tick.
func (q *Queue) Tick() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Pending returns the number of callbacks waiting for the next tick.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// SingleFlight runs fn on a frame of sched, keeping at most one invocation
// pending no matter how many times Trigger is called within that frame.
type SingleFlight struct {
	sched   Scheduler
	fn      func()
	pending atomic.Bool
}

// NewSingleFlight wraps fn.
func NewSingleFlight(sched Scheduler, fn func()) *SingleFlight {
	return &SingleFlight{sched: sched, fn: fn}
}

// Trigger schedules fn unless an invocation is already pending.
func (s *SingleFlight) Trigger() {
	if !s.pending.CompareAndSwap(false, true) {
		return
	}
	s.sched.RequestFrame(func() {
		s.fn()
		s.pending.Store(false)
	})
}

// Pending reports whether an invocation is scheduled but has not run yet.
func (s *SingleFlight) Pending() bool { return s.pending.Load() }
