package user

import (
	"context"
	"time"

	"github.com/zoobzio/clockz"
	"github.com/zoobzio/projector"
)

// DefaultDelay is how long StubRepository waits before answering.
const DefaultDelay = 1000 * time.Millisecond

// Repository fetches the user shown on the screen.
type Repository = projector.Source[User]

// StubRepository stands in for a real backend: it waits a fixed delay and
// then returns a fixed user, or a fixed error.
type StubRepository struct {
	delay time.Duration
	user  User
	err   error
	clock clockz.Clock
}

// StubOption configures a StubRepository.
type StubOption func(*StubRepository)

// WithDelay overrides DefaultDelay.
func WithDelay(d time.Duration) StubOption {
	return func(r *StubRepository) {
		r.delay = d
	}
}

// WithUser overrides the returned user.
func WithUser(u User) StubOption {
	return func(r *StubRepository) {
		r.user = u
	}
}

// WithError makes every fetch fail with err after the delay.
func WithError(err error) StubOption {
	return func(r *StubRepository) {
		r.err = err
	}
}

// WithClock sets the clock used for the delay.
// Use this with clockz.FakeClock for deterministic tests.
func WithClock(clock clockz.Clock) StubOption {
	return func(r *StubRepository) {
		r.clock = clock
	}
}

// NewStubRepository returns a repository that answers User{"Name", 5}
// after DefaultDelay unless configured otherwise.
func NewStubRepository(opts ...StubOption) *StubRepository {
	r := &StubRepository{
		delay: DefaultDelay,
		user:  User{Name: "Name", Age: 5},
		clock: clockz.RealClock,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fetch waits for the configured delay and returns the configured outcome.
func (r *StubRepository) Fetch(ctx context.Context) (User, error) {
	if r.delay > 0 {
		timer := r.clock.NewTimer(r.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return User{}, ctx.Err()
		case <-timer.C():
		}
	}
	if r.err != nil {
		return User{}, r.err
	}
	return r.user, nil
}

var _ Repository = (*StubRepository)(nil)
