package projector

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
	"github.com/zoobzio/pipz"
)

// ErrNotResolved is returned by Wait when the fetch cycle ended without a
// terminal state, i.e. the host context was canceled first.
var ErrNotResolved = errors.New("projector ended without resolving")

// Projector runs one asynchronous fetch and exposes its outcome as an
// observable render state.
//
// The state starts at Loading and moves exactly once to Success, Empty or
// Failure. There is no way back to Loading and no retry: a new fetch needs
// a new Projector.
type Projector[T, V any] struct {
	ctx      context.Context
	source   Source[T]
	classify Classifier[T, V]
	pipeline pipz.Chainable[*Request[T]]
	clock    clockz.Clock
	metrics  MetricsProvider
	onStop   func(Kind)

	cell      *Cell[State[V]]
	resolved  atomic.Bool
	result    atomic.Pointer[T]
	lastError atomic.Pointer[error]
	done      chan struct{}
}

// New creates a Projector and immediately starts its fetch cycle.
//
// The Source is always supplied by the caller; the Projector never builds
// or looks one up. ctx scopes the cycle: canceling it before the fetch
// resolves leaves the state at Loading and emits no terminal state.
//
// Example:
//
//	p := projector.New(ctx, user.NewStubRepository(), user.Classify)
//	defer p.Subscribe(func(s projector.State[user.View]) {
//	    render(s)
//	})()
func New[T, V any](
	ctx context.Context,
	source Source[T],
	classify Classifier[T, V],
	opts ...Option[T],
) *Projector[T, V] {
	if source == nil {
		panic("projector: nil source")
	}
	if classify == nil {
		panic("projector: nil classifier")
	}

	cfg := &config[T]{
		clock: clockz.RealClock,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	p := &Projector[T, V]{
		ctx:      ctx,
		source:   source,
		classify: classify,
		clock:    cfg.clock,
		metrics:  cfg.metrics,
		onStop:   cfg.onStop,
		cell:     NewCell(Loading[V]()),
		done:     make(chan struct{}),
	}
	p.pipeline = buildPipeline(p.fetchStage(), cfg)

	if cfg.syncMode {
		p.run(ctx)
	} else {
		go p.run(ctx)
	}

	return p
}

// fetchStage is the terminal of the pipeline: it calls the Source once.
func (p *Projector[T, V]) fetchStage() pipz.Chainable[*Request[T]] {
	return pipz.Apply("fetch", func(ctx context.Context, req *Request[T]) (*Request[T], error) {
		v, err := p.source.Fetch(ctx)
		if err != nil {
			return req, err
		}
		req.Value = v
		req.Fetched = p.clock.Now()
		return req, nil
	})
}

// run is the whole fetch cycle.
func (p *Projector[T, V]) run(ctx context.Context) {
	// Cancellation of ctx must not drop the closing signals.
	detached := context.WithoutCancel(ctx)

	defer close(p.done)
	defer func() {
		final := p.Kind()
		capitan.Emit(detached, ProjectorStopped,
			KeyState.Field(final.String()),
		)
		if p.onStop != nil {
			p.onStop(final)
		}
	}()

	sourceType := fmt.Sprintf("%T", p.source)
	capitan.Emit(ctx, ProjectorStarted,
		KeySourceType.Field(sourceType),
	)

	// The cell already holds Loading; store it again anyway.
	p.transition(ctx, Loading[V]())

	start := p.clock.Now()
	req, err := p.pipeline.Process(ctx, &Request[T]{Source: sourceType})
	elapsed := p.clock.Since(start)

	if ctx.Err() != nil {
		capitan.Emit(detached, ProjectorCancelled,
			KeySourceType.Field(sourceType),
		)
		return
	}

	if err != nil {
		failure := fmt.Errorf("fetch failed: %w", err)
		p.lastError.Store(&failure)
		capitan.Emit(ctx, ProjectorFetchFailed,
			KeyError.Field(err.Error()),
			KeyDuration.Field(elapsed),
		)
		if p.metrics != nil {
			p.metrics.OnFetchFailure(elapsed)
		}
		p.resolve(ctx, Failure[V](failure))
		return
	}

	value := req.Value
	p.result.Store(&value)
	capitan.Emit(ctx, ProjectorFetchSucceeded,
		KeyDuration.Field(elapsed),
	)
	if p.metrics != nil {
		p.metrics.OnFetchSuccess(elapsed)
	}

	view, empty := p.classify(value)
	if empty {
		p.resolve(ctx, Empty[V]())
		return
	}
	p.resolve(ctx, Success(view))
}

// resolve stores a terminal state. Only the first call has any effect.
func (p *Projector[T, V]) resolve(ctx context.Context, s State[V]) {
	if !p.resolved.CompareAndSwap(false, true) {
		return
	}
	p.transition(ctx, s)
}

// transition stores s and reports the change. It never skips a store, even
// when the kind is unchanged.
func (p *Projector[T, V]) transition(ctx context.Context, s State[V]) {
	old := p.cell.Load().Kind()
	p.cell.Store(s)
	capitan.Emit(ctx, ProjectorStateChanged,
		KeyOldState.Field(old.String()),
		KeyNewState.Field(s.Kind().String()),
	)
	if p.metrics != nil {
		p.metrics.OnStateChange(old, s.Kind())
	}
}

// State returns the latest render state.
func (p *Projector[T, V]) State() State[V] {
	return p.cell.Load()
}

// Kind returns the kind of the latest render state.
func (p *Projector[T, V]) Kind() Kind {
	return p.cell.Load().Kind()
}

// States returns a read-only view of the state cell.
func (p *Projector[T, V]) States() ReadOnly[State[V]] {
	return readOnly[State[V]]{cell: p.cell, onSubscribe: p.subscribed}
}

// Subscribe calls fn with the current state and then with every later
// state. The returned function cancels the subscription.
func (p *Projector[T, V]) Subscribe(fn func(State[V])) func() {
	cancel := p.cell.Subscribe(fn)
	p.subscribed()
	return cancel
}

// Watch returns a channel yielding the current state and every later state.
// It is closed only when ctx is done, not when the state becomes terminal, so
// a range over it with a context that never ends never finishes. Stop
// reading once a terminal kind arrives, or use Wait.
func (p *Projector[T, V]) Watch(ctx context.Context) <-chan State[V] {
	out := p.cell.Watch(ctx)
	p.subscribed()
	return out
}

func (p *Projector[T, V]) subscribed() {
	capitan.Emit(p.ctx, ProjectorSubscribed,
		KeySubscribers.Field(p.cell.Subscribers()),
	)
	if p.metrics != nil {
		p.metrics.OnSubscribe()
	}
}

// Done returns a channel closed when the fetch cycle has ended, whether it
// resolved or was canceled.
func (p *Projector[T, V]) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the cycle ends or ctx is done. It returns the terminal
// state, or ErrNotResolved if the cycle was canceled before resolving.
func (p *Projector[T, V]) Wait(ctx context.Context) (State[V], error) {
	select {
	case <-ctx.Done():
		return p.State(), ctx.Err()
	case <-p.done:
	}
	s := p.State()
	if !s.Kind().Terminal() {
		return s, ErrNotResolved
	}
	return s, nil
}

// Resolved reports whether a terminal state has been stored.
func (p *Projector[T, V]) Resolved() bool {
	return p.resolved.Load()
}

// Result returns the raw fetched value and true once the fetch succeeded.
func (p *Projector[T, V]) Result() (T, bool) {
	ptr := p.result.Load()
	if ptr == nil {
		var zero T
		return zero, false
	}
	return *ptr, true
}

// LastError returns the fetch error, or nil if the fetch did not fail. It is
// the same error carried by the Failure state.
func (p *Projector[T, V]) LastError() error {
	ptr := p.lastError.Load()
	if ptr == nil {
		return nil
	}
	return *ptr
}

// readOnly hides the Cell behind ReadOnly so observers cannot Store.
type readOnly[S any] struct {
	cell        *Cell[S]
	onSubscribe func()
}

func (r readOnly[S]) Load() S {
	return r.cell.Load()
}

func (r readOnly[S]) Subscribe(fn func(S)) func() {
	cancel := r.cell.Subscribe(fn)
	r.onSubscribe()
	return cancel
}

func (r readOnly[S]) Watch(ctx context.Context) <-chan S {
	out := r.cell.Watch(ctx)
	r.onSubscribe()
	return out
}
