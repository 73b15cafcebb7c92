// Package file implements driven.SessionSource over a session file.
//
// The file holds the signed-in user id. A missing or blank file means
// nobody is signed in. The login and logout commands write it, and any
// running watcher picks the change up.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rdkhare/CourtFinder/internal/adapters/driven/filewatch"
	"github.com/rdkhare/CourtFinder/internal/core/domain"
	"github.com/rdkhare/CourtFinder/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.SessionSource = (*Source)(nil)

// DefaultFileName is the session file name inside the config directory.
const DefaultFileName = "session"

// Source reads the session identity from a file.
type Source struct {
	path string
}

// New creates a session source for path.
func New(path string) *Source {
	return &Source{path: path}
}

// Path returns the session file path.
func (s *Source) Path() string {
	return s.path
}

// Current reads the identity now. An empty id means signed out.
func (s *Source) Current() (string, error) {
	content, err := filewatch.Read(s.path)
	if err != nil {
		return "", fmt.Errorf("reading session: %w", err)
	}
	return parseUserID(content), nil
}

// Login records userID as signed in.
func (s *Source) Login(userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" || strings.ContainsAny(userID, "\r\n") {
		return fmt.Errorf("%w: user id must be a single non-empty line", domain.ErrInvalidInput)
	}
	return filewatch.WriteAtomic(s.path, []byte(userID+"\n"))
}

// Logout removes the session file.
func (s *Source) Logout() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}

// Events emits the identity at start and after each change to it.
func (s *Source) Events(ctx context.Context) (<-chan domain.SessionEvent, error) {
	changes, err := filewatch.Watch(ctx, filepath.Clean(s.path))
	if err != nil {
		return nil, err
	}

	out := make(chan domain.SessionEvent, 1)
	go func() {
		defer close(out)

		var last *domain.SessionEvent
		for content := range changes {
			event := toEvent(parseUserID(content))
			if last != nil && *last == event {
				continue
			}
			last = &event
			select {
			case out <- event:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func parseUserID(content filewatch.Content) string {
	if !content.Exists {
		return ""
	}
	return strings.TrimSpace(string(content.Data))
}

func toEvent(userID string) domain.SessionEvent {
	if userID == "" {
		return domain.LoggedOut()
	}
	return domain.LoggedIn(userID)
}
