package user

import (
	"fmt"
	"io"
	"sync"

	"github.com/zoobzio/projector"
)

// Visibility is what the user screen shows for one state.
type Visibility struct {
	Loading bool
	Error   bool
	Card    bool
	Name    string
	Age     string
}

// Visible maps a state to visibility toggles. The card fields are only
// filled for a success; an empty result shows nothing at all.
func Visible(s projector.State[View]) Visibility {
	vis := Visibility{
		Loading: s.Kind() == projector.KindLoading,
		Error:   s.Kind() == projector.KindFailure,
		Card:    s.Kind() == projector.KindSuccess,
	}
	if v, ok := s.Value(); ok {
		vis.Name = v.Name
		vis.Age = v.Age
	}
	return vis
}

// Render writes a one-line text frame for vis.
func Render(w io.Writer, vis Visibility) error {
	var err error
	switch {
	case vis.Loading:
		_, err = fmt.Fprintln(w, "[loading]")
	case vis.Error:
		_, err = fmt.Fprintln(w, "[error] could not load user")
	case vis.Card:
		_, err = fmt.Fprintf(w, "[card] name=%q age=%q\n", vis.Name, vis.Age)
	default:
		_, err = fmt.Fprintln(w, "[empty]")
	}
	return err
}

// Screen re-renders into a writer on every state change.
type Screen struct {
	mu     sync.Mutex
	w      io.Writer
	last   Visibility
	frames int
	err    error
}

// NewScreen creates a Screen writing frames to w.
func NewScreen(w io.Writer) *Screen {
	return &Screen{w: w}
}

// Bind subscribes the screen to p. The returned function unbinds it.
func (s *Screen) Bind(p *projector.Projector[User, View]) func() {
	return p.Subscribe(s.Show)
}

// Show renders one state. Write errors are kept and reported by Err.
func (s *Screen) Show(state projector.State[View]) {
	vis := Visible(state)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = vis
	s.frames++
	if err := Render(s.w, vis); err != nil && s.err == nil {
		s.err = err
	}
}

// Last returns the most recently rendered visibility.
func (s *Screen) Last() Visibility {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Frames returns how many states were rendered.
func (s *Screen) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Err returns the first write error, if any.
func (s *Screen) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
