package projector

import (
	"context"
	"errors"
)

// ErrSourceClosed is returned by ChannelSource when its channel is closed
// before a result arrives.
var ErrSourceClosed = errors.New("source closed before producing a result")

// Source produces a single value asynchronously.
//
// Fetch blocks until the value is available or the operation fails. It must
// return exactly one outcome: a value with a nil error, or an error. Fetch
// should return promptly with ctx.Err() when ctx is canceled.
type Source[T any] interface {
	Fetch(ctx context.Context) (T, error)
}

// SourceFunc adapts an ordinary function to a Source.
type SourceFunc[T any] func(ctx context.Context) (T, error)

// Fetch calls f(ctx).
func (f SourceFunc[T]) Fetch(ctx context.Context) (T, error) {
	return f(ctx)
}

// Result is a completed fetch outcome.
type Result[T any] struct {
	Value T
	Err   error
}

// Ok returns a successful Result.
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Fail returns a failed Result.
func Fail[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

// Classifier maps a fetched value to its view payload. It reports empty=true
// when the value should be rendered as the empty state instead of a success.
type Classifier[T, V any] func(T) (view V, empty bool)
