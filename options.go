package projector

import (
	"context"

	"github.com/zoobzio/clockz"
	"github.com/zoobzio/pipz"
)

// config holds the settings collected from Options before a Projector starts.
type config[T any] struct {
	clock    clockz.Clock
	metrics  MetricsProvider
	syncMode bool
	onStop   func(Kind)
	wrappers []func(pipz.Chainable[*Request[T]]) pipz.Chainable[*Request[T]]
}

// Option configures a Projector.
//
// A Projector starts fetching as soon as it is constructed, so every setting
// is supplied up front. Instance options (clock, metrics, sync mode) adjust
// the Projector itself; pipeline options wrap the fetch stage with pipz
// processors.
type Option[T any] func(*config[T])

// buildPipeline wraps the fetch stage with the configured pipeline options.
func buildPipeline[T any](terminal pipz.Chainable[*Request[T]], cfg *config[T]) pipz.Chainable[*Request[T]] {
	pipeline := terminal
	for _, wrap := range cfg.wrappers {
		pipeline = wrap(pipeline)
	}
	return pipeline
}

// -----------------------------------------------------------------------------
// Instance Options
// -----------------------------------------------------------------------------

// WithClock sets the clock used for fetch timing and request timestamps.
// Use this with clockz.FakeClock for deterministic tests.
func WithClock[T any](clock clockz.Clock) Option[T] {
	return func(c *config[T]) {
		c.clock = clock
	}
}

// WithMetrics sets a metrics provider for observability integration.
func WithMetrics[T any](provider MetricsProvider) Option[T] {
	return func(c *config[T]) {
		c.metrics = provider
	}
}

// WithSyncMode runs the fetch cycle inline inside New instead of in its own
// goroutine. New returns only after the cycle has ended, which makes tests
// deterministic.
func WithSyncMode[T any]() Option[T] {
	return func(c *config[T]) {
		c.syncMode = true
	}
}

// WithOnStop sets a callback invoked once when the fetch cycle ends. It
// receives the final kind: a terminal kind, or KindLoading if the host
// context was canceled first.
func WithOnStop[T any](fn func(Kind)) Option[T] {
	return func(c *config[T]) {
		c.onStop = fn
	}
}

// -----------------------------------------------------------------------------
// Pipeline Options
// -----------------------------------------------------------------------------

// WithMiddleware appends processors after the fetch stage. They run in
// order on the fetched Request before classification; a processor error
// turns the outcome into a failure.
//
// Example:
//
//	projector.New(ctx, repo, user.Classify,
//	    projector.WithMiddleware(
//	        projector.UseEffect[user.User]("audit", auditFn),
//	        projector.UseTransform[user.User]("trim", trimFn),
//	    ),
//	)
func WithMiddleware[T any](processors ...pipz.Chainable[*Request[T]]) Option[T] {
	return func(c *config[T]) {
		c.wrappers = append(c.wrappers, func(p pipz.Chainable[*Request[T]]) pipz.Chainable[*Request[T]] {
			all := make([]pipz.Chainable[*Request[T]], 0, len(processors)+1)
			all = append(all, p)
			all = append(all, processors...)
			return pipz.NewSequence("middleware", all...)
		})
	}
}

// WithErrorHandler adds error observation to the pipeline.
// Errors are passed to the handler for logging, metrics, or alerting,
// but the error still propagates and the Projector still fails.
func WithErrorHandler[T any](handler pipz.Chainable[*pipz.Error[*Request[T]]]) Option[T] {
	return func(c *config[T]) {
		c.wrappers = append(c.wrappers, func(p pipz.Chainable[*Request[T]]) pipz.Chainable[*Request[T]] {
			return pipz.NewHandle("error-handler", p, handler)
		})
	}
}

// -----------------------------------------------------------------------------
// Middleware Processors (Use*)
// -----------------------------------------------------------------------------

// UseTransform creates a processor that rewrites the request and cannot fail.
func UseTransform[T any](name string, fn func(context.Context, *Request[T]) *Request[T]) pipz.Chainable[*Request[T]] {
	return pipz.Transform(pipz.Name(name), fn)
}

// UseApply creates a processor that can rewrite the request or fail.
func UseApply[T any](name string, fn func(context.Context, *Request[T]) (*Request[T], error)) pipz.Chainable[*Request[T]] {
	return pipz.Apply(pipz.Name(name), fn)
}

// UseEffect creates a processor that performs a side effect and passes the
// request through unchanged. A returned error fails the fetch.
func UseEffect[T any](name string, fn func(context.Context, *Request[T]) error) pipz.Chainable[*Request[T]] {
	return pipz.Effect(pipz.Name(name), fn)
}

// UseMutate creates a processor that applies transformer only when
// condition returns true.
func UseMutate[T any](name string, transformer func(context.Context, *Request[T]) *Request[T], condition func(context.Context, *Request[T]) bool) pipz.Chainable[*Request[T]] {
	return pipz.Mutate(pipz.Name(name), transformer, condition)
}

// UseEnrich creates a processor for optional enhancement. If fn fails the
// original request continues unchanged.
func UseEnrich[T any](name string, fn func(context.Context, *Request[T]) (*Request[T], error)) pipz.Chainable[*Request[T]] {
	return pipz.Enrich(pipz.Name(name), fn)
}

// UseFilter runs processor only when condition returns true.
func UseFilter[T any](name string, condition func(context.Context, *Request[T]) bool, processor pipz.Chainable[*Request[T]]) pipz.Chainable[*Request[T]] {
	return pipz.NewFilter(pipz.Name(name), condition, processor)
}
