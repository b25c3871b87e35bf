package user

import "testing"

func TestClassify_Success(t *testing.T) {
	v, empty := Classify(User{Name: "Name", Age: 5})
	if empty {
		t.Fatal("expected non-empty view")
	}
	if v.Name != "Name" || v.Age != "5" {
		t.Errorf("expected {Name 5}, got %+v", v)
	}
}

func TestClassify_EmptyWhenBothFieldsEmpty(t *testing.T) {
	v, empty := Classify(User{Name: "", Age: 0})
	if !empty {
		t.Fatalf("expected empty view, got %+v", v)
	}
}

func TestClassify_EmptyNameWithAgeIsNotEmpty(t *testing.T) {
	v, empty := Classify(User{Name: "", Age: 5})
	if empty {
		t.Fatal("expected non-empty view")
	}
	if v.Name != "" || v.Age != "5" {
		t.Errorf("expected {\"\" 5}, got %+v", v)
	}
}

func TestClassify_NameWithUnknownAgeIsNotEmpty(t *testing.T) {
	v, empty := Classify(User{Name: "Name", Age: 0})
	if empty {
		t.Fatal("expected non-empty view")
	}
	if v.Age != "" {
		t.Errorf("expected unknown age to render empty, got %q", v.Age)
	}
}

func TestFormatAge(t *testing.T) {
	if s := FormatAge(0); s != "" {
		t.Errorf("expected empty string for 0, got %q", s)
	}
	if s := FormatAge(42); s != "42" {
		t.Errorf("expected '42', got %q", s)
	}
	if s := FormatAge(-1); s != "-1" {
		t.Errorf("expected '-1', got %q", s)
	}
}

func TestView_Empty(t *testing.T) {
	if !(View{}).Empty() {
		t.Error("expected zero view to be empty")
	}
	if (View{Age: "1"}).Empty() {
		t.Error("expected view with age to be non-empty")
	}
}
