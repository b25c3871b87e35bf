// Package projector turns a single asynchronous fetch into an observable
// render state.
//
// The core type is Projector, which calls a Source exactly once, classifies
// the outcome and publishes it through a replay-latest Cell.
//
// # State Machine
//
// A Projector holds one of four states:
//
//   - Loading: Initial state, the fetch has not resolved
//   - Success: The fetch returned a value with a non-empty view
//   - Empty: The fetch returned a value whose view is empty
//   - Failure: The fetch returned an error
//
// The only transitions are Loading → Success, Loading → Empty and
// Loading → Failure. Terminal states are final; a new fetch needs a new
// Projector.
//
// # Sources
//
// The Source interface abstracts the fetch. It is always passed to New by
// the caller, so the binding between a view and its data is plain
// constructor wiring. The core package provides SourceFunc and
// ChannelSource; the user package provides stub and file-backed sources.
//
// # Observation
//
// State returns the latest state synchronously. Subscribe and Watch deliver
// the latest state immediately and every later state in order, so an
// observer attached before resolution sees Loading then the terminal state,
// and one attached afterwards sees only the terminal state.
//
// # Example
//
//	p := projector.New(ctx, user.NewStubRepository(), user.Classify)
//
//	cancel := p.Subscribe(func(s projector.State[user.View]) {
//	    switch s.Kind() {
//	    case projector.KindLoading:
//	        showSpinner()
//	    case projector.KindSuccess:
//	        v, _ := s.Value()
//	        showCard(v.Name, v.Age)
//	    case projector.KindFailure:
//	        showError()
//	    }
//	})
//	defer cancel()
package projector
