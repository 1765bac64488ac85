package frame

import (
	"sync"
	"testing"
)

func TestSingleFlightCoalescesWithinFrame(t *testing.T) {
	var q Queue
	var runs int
	sf := NewSingleFlight(&q, func() { runs++ })

	for i := 0; i < 10; i++ {
		sf.Trigger()
	}
	if q.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", q.Pending())
	}
	if !sf.Pending() {
		t.Error("SingleFlight.Pending() = false before tick, want true")
	}

	q.Tick()
	if runs != 1 {
		t.Errorf("runs = %d, want 1", runs)
	}
	if sf.Pending() {
		t.Error("SingleFlight.Pending() = true after tick, want false")
	}

	// The latch is released, the next frame schedules again.
	sf.Trigger()
	sf.Trigger()
	q.Tick()
	if runs != 2 {
		t.Errorf("runs after second frame = %d, want 2", runs)
	}
}

func TestQueueTickDefersNestedRequests(t *testing.T) {
	var q Queue
	var order []string
	q.RequestFrame(func() {
		order = append(order, "first")
		q.RequestFrame(func() { order = append(order, "nested") })
	})

	if n := q.Tick(); n != 1 {
		t.Errorf("Tick() = %d, want 1", n)
	}
	if len(order) != 1 {
		t.Fatalf("order after first tick = %v, want [first]", order)
	}
	q.Tick()
	if len(order) != 2 || order[1] != "nested" {
		t.Errorf("order after second tick = %v, want [first nested]", order)
	}
}

func TestSingleFlightConcurrentTriggers(t *testing.T) {
	var q Queue
	var mu sync.Mutex
	var runs int
	sf := NewSingleFlight(&q, func() {
		mu.Lock()
		runs++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sf.Trigger()
		}()
	}
	wg.Wait()

	if q.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", q.Pending())
	}
	q.Tick()
	if runs != 1 {
		t.Errorf("runs = %d, want 1", runs)
	}
}
