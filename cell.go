package projector

import (
	"context"
	"sync"
	"sync/atomic"
)

// ReadOnly is the observer side of a Cell. Holders can read and subscribe
// but never store.
type ReadOnly[S any] interface {
	// Load returns the latest stored value.
	Load() S

	// Subscribe registers fn, calls it immediately with the latest value and
	// then with every later value in store order. The returned function
	// removes the subscription; it is safe to call more than once.
	Subscribe(fn func(S)) (cancel func())

	// Watch is the channel form of Subscribe. The channel first yields the
	// latest value, then every later value in order, and is closed when ctx
	// is done.
	Watch(ctx context.Context) <-chan S
}

// Cell is a single-slot observable value with replay-latest subscriptions.
//
// Deliveries (the replay for a new subscriber and the notifications for each
// Store) go through one FIFO queue drained by a single goroutine at a time,
// so a subscriber never sees values out of order. Callbacks may call
// Subscribe, Watch or Store on the same Cell: the nested delivery is queued
// and runs after the current callback returns.
type Cell[S any] struct {
	current atomic.Pointer[S]

	mu       sync.Mutex
	subs     []*subscriber[S]
	nextID   uint64
	pending  []delivery[S]
	draining bool
}

type subscriber[S any] struct {
	id     uint64
	fn     func(S)
	active atomic.Bool
}

type delivery[S any] struct {
	sub   *subscriber[S]
	value S
}

// NewCell creates a Cell holding initial.
func NewCell[S any](initial S) *Cell[S] {
	c := &Cell[S]{}
	c.current.Store(&initial)
	return c
}

// Load returns the latest stored value.
func (c *Cell[S]) Load() S {
	return *c.current.Load()
}

// Store replaces the value and notifies subscribers in registration order.
// Storing a value equal to the current one still notifies.
//
// If another goroutine is already delivering, Store queues the notifications
// for it and returns; otherwise it delivers them itself before returning.
func (c *Cell[S]) Store(s S) {
	c.mu.Lock()
	c.current.Store(&s)
	for _, sub := range c.subs {
		c.pending = append(c.pending, delivery[S]{sub: sub, value: s})
	}
	c.drainLocked()
}

// Subscribe implements ReadOnly. Called from inside a callback of the same
// Cell, the replay is delivered once that callback returns.
func (c *Cell[S]) Subscribe(fn func(S)) func() {
	c.mu.Lock()
	c.nextID++
	sub := &subscriber[S]{id: c.nextID, fn: fn}
	sub.active.Store(true)
	c.subs = append(c.subs, sub)
	c.pending = append(c.pending, delivery[S]{sub: sub, value: *c.current.Load()})
	c.drainLocked()

	return func() { c.unsubscribe(sub) }
}

// drainLocked is called with mu held and releases it. The first caller
// becomes the drainer; later callers only enqueue.
func (c *Cell[S]) drainLocked() {
	if c.draining {
		c.mu.Unlock()
		return
	}
	c.draining = true

	done := false
	defer func() {
		if !done {
			// A callback panicked; let the next caller drain the rest.
			c.mu.Lock()
			c.draining = false
			c.mu.Unlock()
		}
	}()

	for len(c.pending) > 0 {
		d := c.pending[0]
		c.pending[0] = delivery[S]{}
		c.pending = c.pending[1:]
		c.mu.Unlock()

		if d.sub.active.Load() {
			d.sub.fn(d.value)
		}

		c.mu.Lock()
	}
	c.pending = nil
	c.draining = false
	done = true
	c.mu.Unlock()
}

func (c *Cell[S]) unsubscribe(sub *subscriber[S]) {
	if !sub.active.Swap(false) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, s := range c.subs {
		if s.id == sub.id {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			return
		}
	}
}

// Watch implements ReadOnly. Values are queued rather than dropped, so a
// slow reader still observes every stored value. The channel is not closed
// when the values stop changing; only ctx ends it.
func (c *Cell[S]) Watch(ctx context.Context) <-chan S {
	out := make(chan S)

	var (
		mu    sync.Mutex
		queue []S
		ready = make(chan struct{}, 1)
	)

	cancel := c.Subscribe(func(s S) {
		mu.Lock()
		queue = append(queue, s)
		mu.Unlock()
		select {
		case ready <- struct{}{}:
		default:
		}
	})

	go func() {
		defer close(out)
		defer cancel()

		for {
			mu.Lock()
			if len(queue) == 0 {
				mu.Unlock()
				select {
				case <-ctx.Done():
					return
				case <-ready:
					continue
				}
			}
			s := queue[0]
			queue = queue[1:]
			mu.Unlock()

			select {
			case out <- s:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// Subscribers returns the number of active subscriptions.
func (c *Cell[S]) Subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}

// Ensure Cell implements ReadOnly.
var _ ReadOnly[int] = (*Cell[int])(nil)
