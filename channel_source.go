package projector

import "context"

// ChannelSource resolves a fetch with the next Result received on a channel.
// Useful for testing and for bridging callback-style producers, since the
// caller decides exactly when the fetch completes.
type ChannelSource[T any] struct {
	ch <-chan Result[T]
}

// NewChannelSource creates a ChannelSource reading from ch.
func NewChannelSource[T any](ch <-chan Result[T]) *ChannelSource[T] {
	return &ChannelSource[T]{ch: ch}
}

// Fetch waits for one Result. A closed channel yields ErrSourceClosed.
func (s *ChannelSource[T]) Fetch(ctx context.Context) (T, error) {
	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case r, ok := <-s.ch:
		if !ok {
			return zero, ErrSourceClosed
		}
		if r.Err != nil {
			return zero, r.Err
		}
		return r.Value, nil
	}
}
