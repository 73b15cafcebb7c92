package domain

import "fmt"

// SessionEventKind distinguishes login from logout.
type SessionEventKind string

const (
	// SessionLoggedIn carries the identity that is now signed in.
	SessionLoggedIn SessionEventKind = "logged_in"
	// SessionLoggedOut means no identity is signed in.
	SessionLoggedOut SessionEventKind = "logged_out"
)

// SessionEvent is a change in the signed-in identity.
type SessionEvent struct {
	Kind   SessionEventKind `json:"type"`
	UserID string           `json:"user_id,omitempty"`
}

// LoggedIn builds a login event.
func LoggedIn(userID string) SessionEvent {
	return SessionEvent{Kind: SessionLoggedIn, UserID: userID}
}

// LoggedOut builds a logout event.
func LoggedOut() SessionEvent {
	return SessionEvent{Kind: SessionLoggedOut}
}

// Validate checks the event is well formed.
func (e SessionEvent) Validate() error {
	switch e.Kind {
	case SessionLoggedIn:
		if e.UserID == "" {
			return fmt.Errorf("%w: login event without user id", ErrInvalidInput)
		}
	case SessionLoggedOut:
	default:
		return fmt.Errorf("%w: unknown session event %q", ErrInvalidInput, e.Kind)
	}
	return nil
}

func (e SessionEvent) String() string {
	if e.Kind == SessionLoggedIn {
		return "login(" + e.UserID + ")"
	}
	return string(e.Kind)
}
