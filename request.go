package projector

import "time"

// Request carries a fetched value through the fetch pipeline. Middleware
// registered with WithMiddleware sees the Request after the Source has
// filled Value and may transform or reject it before classification.
type Request[T any] struct {
	// Value is the fetched value. It is the zero value until the fetch
	// stage has run.
	Value T

	// Fetched is when the Source returned, according to the Projector clock.
	Fetched time.Time

	// Source is the type name of the Source that produced Value.
	Source string
}
