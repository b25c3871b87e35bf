package user

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/zoobzio/projector"
)

func TestVisible_Loading(t *testing.T) {
	vis := Visible(projector.Loading[View]())
	if !vis.Loading || vis.Error || vis.Card {
		t.Errorf("expected only loading visible, got %+v", vis)
	}
}

func TestVisible_Success(t *testing.T) {
	vis := Visible(projector.Success(View{Name: "Name", Age: "5"}))
	if vis.Loading || vis.Error || !vis.Card {
		t.Errorf("expected only card visible, got %+v", vis)
	}
	if vis.Name != "Name" || vis.Age != "5" {
		t.Errorf("expected card {Name 5}, got %+v", vis)
	}
}

func TestVisible_Empty(t *testing.T) {
	vis := Visible(projector.Empty[View]())
	if vis.Loading || vis.Error || vis.Card {
		t.Errorf("expected nothing visible, got %+v", vis)
	}
}

func TestVisible_Failure(t *testing.T) {
	vis := Visible(projector.Failure[View](errors.New("boom")))
	if vis.Loading || !vis.Error || vis.Card {
		t.Errorf("expected only error visible, got %+v", vis)
	}
	if vis.Name != "" || vis.Age != "" {
		t.Errorf("expected no card fields on failure, got %+v", vis)
	}
}

func TestRender_Frames(t *testing.T) {
	cases := []struct {
		vis  Visibility
		want string
	}{
		{Visibility{Loading: true}, "[loading]"},
		{Visibility{Error: true}, "[error]"},
		{Visibility{Card: true, Name: "N", Age: "1"}, `[card] name="N" age="1"`},
		{Visibility{}, "[empty]"},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		if err := Render(&buf, tc.vis); err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if !strings.HasPrefix(buf.String(), tc.want) {
			t.Errorf("expected frame starting %q, got %q", tc.want, buf.String())
		}
	}
}

func TestScreen_BindAfterResolution(t *testing.T) {
	repo := NewStubRepository(WithDelay(0))
	p := projector.New(context.Background(), Repository(repo), Classify,
		projector.WithSyncMode[User](),
	)

	var buf bytes.Buffer
	screen := NewScreen(&buf)
	unbind := screen.Bind(p)
	defer unbind()

	if screen.Frames() != 1 {
		t.Errorf("expected 1 frame, got %d", screen.Frames())
	}
	last := screen.Last()
	if !last.Card || last.Name != "Name" || last.Age != "5" {
		t.Errorf("expected card {Name 5}, got %+v", last)
	}
	if !strings.Contains(buf.String(), `name="Name"`) {
		t.Errorf("expected rendered card, got %q", buf.String())
	}
	if screen.Err() != nil {
		t.Errorf("expected no write error, got %v", screen.Err())
	}
}

func TestScreen_BindBeforeResolution(t *testing.T) {
	ch := make(chan projector.Result[User])
	p := projector.New(context.Background(), Repository(projector.NewChannelSource(ch)), Classify)

	var buf bytes.Buffer
	screen := NewScreen(&buf)
	unbind := screen.Bind(p)
	defer unbind()

	ch <- projector.Fail[User](errors.New("offline"))
	<-p.Done()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if !strings.HasPrefix(lines[0], "[loading]") {
		t.Errorf("expected first frame loading, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[len(lines)-1], "[error]") {
		t.Errorf("expected last frame error, got %q", lines[len(lines)-1])
	}
	if !screen.Last().Error {
		t.Errorf("expected error visible, got %+v", screen.Last())
	}
}
