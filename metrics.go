package projector

import "time"

// MetricsProvider allows integration with metrics systems like Prometheus, StatsD, etc.
// Implement this interface to receive callbacks on key projector events.
type MetricsProvider interface {
	// OnStateChange is called on every state store, including the explicit
	// Loading store at the start of a cycle.
	OnStateChange(from, to Kind)

	// OnFetchSuccess is called when the fetch pipeline returns a value.
	OnFetchSuccess(duration time.Duration)

	// OnFetchFailure is called when the fetch pipeline returns an error.
	// Cancellation by the host context is not reported as a failure.
	OnFetchFailure(duration time.Duration)

	// OnSubscribe is called when an observer subscribes.
	OnSubscribe()
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Embed it to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnStateChange(_, _ Kind)         {}
func (NoOpMetricsProvider) OnFetchSuccess(_ time.Duration) {}
func (NoOpMetricsProvider) OnFetchFailure(_ time.Duration) {}
func (NoOpMetricsProvider) OnSubscribe()                    {}
