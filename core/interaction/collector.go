package interaction

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTimeout is returned when no matching event arrives in time.
var ErrTimeout = errors.New("interaction timed out")

// Event is a component interaction (a button click) reported by the platform.
type Event struct {
	UserID    uint64
	ChannelID uint64
	MessageID uint64
	CustomID  string
}

// Filter selects the events a waiter accepts.
type Filter func(Event) bool

type waiter struct {
	filter Filter
	ch     chan Event
}

// Collector routes incoming events to suspended waiters. Each event is consumed
// by at most one waiter; events matching nobody are dropped.
type Collector struct {
	mu      sync.Mutex
	next    uint64
	waiters map[uint64]*waiter
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{waiters: make(map[uint64]*waiter)}
}

// Dispatch hands ev to a waiter whose filter accepts it and reports whether
// anyone took it.
func (c *Collector) Dispatch(ev Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, w := range c.waiters {
		if !w.filter(ev) {
			continue
		}
		delete(c.waiters, id)
		w.ch <- ev
		return true
	}
	return false
}

// Await suspends until an accepted event arrives, the timeout expires or ctx is done.
func (c *Collector) Await(ctx context.Context, filter Filter, timeout time.Duration) (Event, error) {
	w := &waiter{filter: filter, ch: make(chan Event, 1)}

	c.mu.Lock()
	c.next++
	id := c.next
	c.waiters[id] = w
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.waiters, id)
		c.mu.Unlock()
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ev := <-w.ch:
		return ev, nil
	case <-timer.C:
		// An event may have been handed over right as the timer fired
		select {
		case ev := <-w.ch:
			return ev, nil
		default:
		}
		return Event{}, ErrTimeout
	case <-ctx.Done():
		return Event{}, ctx.Err()
	}
}

// Pending returns the number of suspended waiters.
func (c *Collector) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.waiters)
}
