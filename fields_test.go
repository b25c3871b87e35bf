package projector

import (
	"testing"
	"time"
)

func TestKeyState(t *testing.T) {
	field := KeyState.Field("success")
	if field.Key().Name() != "state" {
		t.Errorf("expected key 'state', got %q", field.Key().Name())
	}
}

func TestKeyOldState(t *testing.T) {
	field := KeyOldState.Field("loading")
	if field.Key().Name() != "old_state" {
		t.Errorf("expected key 'old_state', got %q", field.Key().Name())
	}
}

func TestKeyNewState(t *testing.T) {
	field := KeyNewState.Field("empty")
	if field.Key().Name() != "new_state" {
		t.Errorf("expected key 'new_state', got %q", field.Key().Name())
	}
}

func TestKeyError(t *testing.T) {
	field := KeyError.Field("fetch failed")
	if field.Key().Name() != "error" {
		t.Errorf("expected key 'error', got %q", field.Key().Name())
	}
}

func TestKeySourceType(t *testing.T) {
	field := KeySourceType.Field("*user.StubRepository")
	if field.Key().Name() != "source_type" {
		t.Errorf("expected key 'source_type', got %q", field.Key().Name())
	}
}

func TestKeyDuration(t *testing.T) {
	field := KeyDuration.Field(time.Second)
	if field.Key().Name() != "duration" {
		t.Errorf("expected key 'duration', got %q", field.Key().Name())
	}
}

func TestKeySubscribers(t *testing.T) {
	field := KeySubscribers.Field(3)
	if field.Key().Name() != "subscribers" {
		t.Errorf("expected key 'subscribers', got %q", field.Key().Name())
	}
}
