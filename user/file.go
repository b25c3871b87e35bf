package user

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/zoobzio/projector"
)

// validate is the shared validator instance.
var validate = validator.New()

// FileRepository reads one user record from a JSON or YAML file. It never
// writes the file.
type FileRepository struct {
	path          string
	codec         projector.Codec
	waitForCreate bool
}

// NewFileRepository creates a FileRepository for path. The codec is chosen
// from the file extension; see projector.CodecFor.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path:  path,
		codec: projector.CodecFor(path),
	}
}

// Codec overrides the codec chosen from the extension.
func (r *FileRepository) Codec(codec projector.Codec) *FileRepository {
	r.codec = codec
	return r
}

// WaitForCreate makes Fetch suspend until the file exists instead of
// failing when it is missing.
func (r *FileRepository) WaitForCreate() *FileRepository {
	r.waitForCreate = true
	return r
}

// Fetch reads, decodes and validates the record.
func (r *FileRepository) Fetch(ctx context.Context) (User, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) && r.waitForCreate {
		data, err = r.awaitFile(ctx)
	}
	if err != nil {
		return User{}, fmt.Errorf("read user record: %w", err)
	}

	var u User
	if err := r.codec.Unmarshal(data, &u); err != nil {
		return User{}, fmt.Errorf("decode user record %s: %w", r.path, err)
	}
	if err := validate.Struct(u); err != nil {
		return User{}, fmt.Errorf("validate user record %s: %w", r.path, err)
	}
	return u, nil
}

// awaitFile watches the parent directory until the file is created or
// written, then reads it once.
func (r *FileRepository) awaitFile(ctx context.Context) ([]byte, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(r.path)
	if err := watcher.Add(dir); err != nil {
		return nil, fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	// The file may have appeared between the first read and Add.
	if data, err := os.ReadFile(r.path); err == nil {
		return data, nil
	}

	target := filepath.Clean(r.path)
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil, errors.New("fsnotify watcher closed")
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			data, err := os.ReadFile(r.path)
			if err != nil {
				continue
			}
			if len(data) == 0 {
				// Created but not yet written.
				continue
			}
			return data, nil

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil, errors.New("fsnotify watcher closed")
			}
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}
}

var _ Repository = (*FileRepository)(nil)
