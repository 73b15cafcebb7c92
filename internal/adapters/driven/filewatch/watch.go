// Package filewatch reports the contents of a single file as it changes.
//
// The parent directory is watched rather than the file itself so editors
// and tools that replace the file by rename are still seen.
package filewatch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/rdkhare/CourtFinder/internal/logger"
)

var watchLog = logger.Component("filewatch")

// Content is a file's state after a change.
type Content struct {
	Data   []byte
	Exists bool
}

// Equal reports whether two states are indistinguishable.
func (c Content) Equal(other Content) bool {
	return c.Exists == other.Exists && bytes.Equal(c.Data, other.Data)
}

// Read returns the file's current state.
func Read(path string) (Content, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Content{}, nil
	}
	if err != nil {
		return Content{}, err
	}
	return Content{Data: data, Exists: true}, nil
}

// WriteAtomic replaces path with data via a temp file and rename,
// creating the parent directory if needed.
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// Watch emits the file's current state, then every distinct state after a
// change. The channel closes when ctx is cancelled.
func Watch(ctx context.Context, path string) (<-chan Content, error) {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	initial, err := Read(path)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	out := make(chan Content, 1)
	out <- initial

	go func() {
		defer close(out)
		defer watcher.Close()

		last := initial
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !relevant(event, path) {
					continue
				}
				current, err := Read(path)
				if err != nil {
					watchLog.Warn("reading %s: %v", path, err)
					continue
				}
				if current.Equal(last) {
					continue
				}
				last = current
				select {
				case out <- current:
				case <-ctx.Done():
					return
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				watchLog.Warn("watching %s: %v", path, err)
			}
		}
	}()

	return out, nil
}

// relevant reports whether event may have changed the watched file.
func relevant(event fsnotify.Event, path string) bool {
	if filepath.Clean(event.Name) != path {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
