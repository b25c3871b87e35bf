package projector

import "github.com/zoobzio/capitan"

// Field keys for Projector events.
var (
	// KeyState is the kind a Projector ended in.
	KeyState = capitan.NewStringKey("state")

	// KeyOldState is the kind before a transition.
	KeyOldState = capitan.NewStringKey("old_state")

	// KeyNewState is the kind after a transition.
	KeyNewState = capitan.NewStringKey("new_state")

	// KeyError is the error message when a fetch fails.
	KeyError = capitan.NewStringKey("error")

	// KeySourceType is the type name of the Source implementation.
	KeySourceType = capitan.NewStringKey("source_type")

	// KeyDuration is how long the fetch pipeline took.
	KeyDuration = capitan.NewDurationKey("duration")

	// KeySubscribers is the subscriber count after a subscription was added.
	KeySubscribers = capitan.NewIntKey("subscribers")
)
