package user

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/zoobzio/projector"
)

func TestFileRepository_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.json")
	if err := os.WriteFile(path, []byte(`{"name": "Name", "age": 5}`), 0o600); err != nil {
		t.Fatal(err)
	}

	u, err := NewFileRepository(path).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if u.Name != "Name" || u.Age != 5 {
		t.Errorf("expected {Name 5}, got %+v", u)
	}
}

func TestFileRepository_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.yaml")
	if err := os.WriteFile(path, []byte("name: Name\nage: 5\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	u, err := NewFileRepository(path).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if u.Name != "Name" || u.Age != 5 {
		t.Errorf("expected {Name 5}, got %+v", u)
	}
}

func TestFileRepository_CodecOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.txt")
	if err := os.WriteFile(path, []byte("name: Name\nage: 5\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := NewFileRepository(path).Codec(projector.JSONCodec{}).Fetch(context.Background())
	if err == nil {
		t.Fatal("expected JSON codec to reject YAML content")
	}
}

func TestFileRepository_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")

	_, err := NewFileRepository(path).Fetch(context.Background())
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestFileRepository_InvalidContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.json")
	if err := os.WriteFile(path, []byte(`{broken`), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileRepository(path).Fetch(context.Background()); err == nil {
		t.Error("expected decode error")
	}
}

func TestFileRepository_WaitForCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.json")
	repo := NewFileRepository(path).WaitForCreate()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	type outcome struct {
		u   User
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		u, err := repo.Fetch(ctx)
		done <- outcome{u, err}
	}()

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(path, []byte(`{"name": "Late", "age": 7}`), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case o := <-done:
		if o.err != nil {
			t.Fatalf("Fetch() error = %v", o.err)
		}
		if o.u.Name != "Late" || o.u.Age != 7 {
			t.Errorf("expected {Late 7}, got %+v", o.u)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("fetch did not return after the file was created")
	}
}

func TestFileRepository_WaitForCreateCanceled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "never.json")
	repo := NewFileRepository(path).WaitForCreate()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := repo.Fetch(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
}

func TestFileRepository_DrivesProjectorToFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")

	p := projector.New(context.Background(), Repository(NewFileRepository(path)), Classify,
		projector.WithSyncMode[User](),
	)

	if p.Kind() != projector.KindFailure {
		t.Errorf("expected failure, got %s", p.Kind())
	}
}

func TestFileRepository_NegativeAgeRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.json")
	if err := os.WriteFile(path, []byte(`{"name": "Name", "age": -3}`), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := NewFileRepository(path).Fetch(context.Background())
	if err == nil {
		t.Fatal("expected validation error for negative age")
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validator.ValidationErrors, got %v", err)
	}
	if verrs[0].Field() != "Age" {
		t.Errorf("expected Age to fail, got %s", verrs[0].Field())
	}
}

func TestFileRepository_EmptyRecordIsValid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.yaml")
	if err := os.WriteFile(path, []byte("name: \"\"\nage: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	u, err := NewFileRepository(path).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if _, empty := Classify(u); !empty {
		t.Errorf("expected empty classification for %+v", u)
	}
}
