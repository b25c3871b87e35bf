package projector

import "fmt"

// Kind identifies which of the four render states is active.
type Kind int32

const (
	// KindLoading indicates the fetch has not resolved yet. It is the
	// initial kind of every Projector.
	KindLoading Kind = iota

	// KindSuccess indicates the fetch succeeded and produced a non-empty view.
	KindSuccess

	// KindEmpty indicates the fetch succeeded but the classified view was empty.
	KindEmpty

	// KindFailure indicates the fetch failed.
	KindFailure
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindLoading:
		return "loading"
	case KindSuccess:
		return "success"
	case KindEmpty:
		return "empty"
	case KindFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Terminal reports whether k is one of the resolved kinds.
func (k Kind) Terminal() bool {
	return k == KindSuccess || k == KindEmpty || k == KindFailure
}

// State is the closed render-state variant observed by views. Exactly one
// kind is active; the payload is only meaningful for KindSuccess and the
// error only for KindFailure.
type State[V any] struct {
	kind  Kind
	value V
	err   error
}

// Loading returns the initial state.
func Loading[V any]() State[V] {
	return State[V]{kind: KindLoading}
}

// Success returns a resolved state carrying v.
func Success[V any](v V) State[V] {
	return State[V]{kind: KindSuccess, value: v}
}

// Empty returns the resolved state for an empty result.
func Empty[V any]() State[V] {
	return State[V]{kind: KindEmpty}
}

// Failure returns the resolved state for a failed fetch. The error is kept
// for diagnostics only; views are expected to render every failure the same.
func Failure[V any](err error) State[V] {
	return State[V]{kind: KindFailure, err: err}
}

// Kind returns the active kind.
func (s State[V]) Kind() Kind {
	return s.kind
}

// Value returns the success payload and true, or the zero value and false
// for any other kind.
func (s State[V]) Value() (V, bool) {
	if s.kind != KindSuccess {
		var zero V
		return zero, false
	}
	return s.value, true
}

// Err returns the fetch error for a failure state, nil otherwise.
func (s State[V]) Err() error {
	if s.kind != KindFailure {
		return nil
	}
	return s.err
}

// String renders the state for logs and test output.
func (s State[V]) String() string {
	if s.kind == KindSuccess {
		return fmt.Sprintf("%s(%v)", s.kind, s.value)
	}
	return s.kind.String()
}
