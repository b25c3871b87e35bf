package projector

import "github.com/zoobzio/capitan"

// Projector lifecycle signals.
var (
	// ProjectorStarted is emitted when a Projector begins its fetch cycle.
	ProjectorStarted = capitan.NewSignal(
		"projector.started",
		"Projector fetch cycle started",
	)

	// ProjectorStopped is emitted when the fetch cycle ends, resolved or not.
	ProjectorStopped = capitan.NewSignal(
		"projector.stopped",
		"Projector fetch cycle ended",
	)

	// ProjectorCancelled is emitted when the host context ends before the
	// fetch resolves. No terminal state follows.
	ProjectorCancelled = capitan.NewSignal(
		"projector.cancelled",
		"Projector cancelled before resolution",
	)

	// ProjectorStateChanged is emitted on every state store.
	ProjectorStateChanged = capitan.NewSignal(
		"projector.state.changed",
		"Projector state transition",
	)
)

// Fetch signals.
var (
	// ProjectorFetchSucceeded is emitted when the fetch pipeline returns a value.
	ProjectorFetchSucceeded = capitan.NewSignal(
		"projector.fetch.succeeded",
		"Fetch succeeded",
	)

	// ProjectorFetchFailed is emitted when the fetch pipeline returns an error.
	ProjectorFetchFailed = capitan.NewSignal(
		"projector.fetch.failed",
		"Fetch failed",
	)
)

// ProjectorSubscribed is emitted when an observer subscribes to a Projector.
var ProjectorSubscribed = capitan.NewSignal(
	"projector.subscribed",
	"Observer subscribed",
)
