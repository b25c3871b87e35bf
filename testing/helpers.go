// Package testing provides test utilities and helpers for projector testing.
package testing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/zoobzio/projector"
)

// TestUser is a standard record type for testing projectors.
type TestUser struct {
	Name string `yaml:"name" json:"name"`
	Age  int    `yaml:"age" json:"age"`
}

// ClassifyTestUser renders a TestUser as a single display string. The view
// is empty when the name is empty and the age is zero.
func ClassifyTestUser(u TestUser) (string, bool) {
	if u.Name == "" && u.Age == 0 {
		return "", true
	}
	return u.Name, false
}

// WaitFor polls a condition until it returns true or timeout is reached.
// Returns true if the condition was met, false if timeout occurred.
func WaitFor(t *testing.T, timeout time.Duration, condition func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

// WaitForKind waits until the projector reaches the expected kind or timeout occurs.
func WaitForKind[T, V any](t *testing.T, p *projector.Projector[T, V], expected projector.Kind, timeout time.Duration) bool {
	t.Helper()
	return WaitFor(t, timeout, func() bool {
		return p.Kind() == expected
	})
}

// RequireKind fails the test immediately if the projector is not in the expected kind.
func RequireKind[T, V any](t *testing.T, p *projector.Projector[T, V], expected projector.Kind) {
	t.Helper()
	if got := p.Kind(); got != expected {
		t.Fatalf("expected state %s, got %s", expected, got)
	}
}

// RequireView fails the test if the projector is not a success or the view
// does not pass check.
func RequireView[T, V any](t *testing.T, p *projector.Projector[T, V], check func(V) bool) {
	t.Helper()
	v, ok := p.State().Value()
	if !ok {
		t.Fatalf("expected success, got %s", p.State())
	}
	if !check(v) {
		t.Fatalf("view check failed: %+v", v)
	}
}

// Recorder collects every state delivered to it. Pass Record to Subscribe.
type Recorder[V any] struct {
	mu     sync.Mutex
	states []projector.State[V]
}

// Record appends s.
func (r *Recorder[V]) Record(s projector.State[V]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

// States returns a copy of the recorded states.
func (r *Recorder[V]) States() []projector.State[V] {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]projector.State[V], len(r.states))
	copy(out, r.states)
	return out
}

// Kinds returns the recorded kinds in delivery order.
func (r *Recorder[V]) Kinds() []projector.Kind {
	states := r.States()
	out := make([]projector.Kind, len(states))
	for i, s := range states {
		out[i] = s.Kind()
	}
	return out
}

// RequireResolvedSequence fails the test unless the recorded kinds are zero
// or more Loading states followed by exactly one terminal state.
func RequireResolvedSequence[V any](t *testing.T, r *Recorder[V], terminal projector.Kind) {
	t.Helper()
	kinds := r.Kinds()
	if len(kinds) == 0 {
		t.Fatal("expected recorded states, got none")
	}
	for i, k := range kinds[:len(kinds)-1] {
		if k != projector.KindLoading {
			t.Fatalf("expected loading at index %d, got %v", i, kinds)
		}
	}
	if last := kinds[len(kinds)-1]; last != terminal {
		t.Fatalf("expected %s last, got %v", terminal, kinds)
	}
}

// NewTestProjector starts a projector over a channel source. Send one
// projector.Result on the returned channel to resolve it.
func NewTestProjector(t *testing.T, opts ...projector.Option[TestUser]) (*projector.Projector[TestUser, string], chan<- projector.Result[TestUser]) {
	t.Helper()
	ch := make(chan projector.Result[TestUser], 1)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	p := projector.New(ctx, projector.Source[TestUser](projector.NewChannelSource(ch)), ClassifyTestUser, opts...)
	return p, ch
}
