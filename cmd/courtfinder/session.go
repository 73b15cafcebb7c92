package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rdkhare/CourtFinder/internal/adapters/driving/cli"
	"github.com/rdkhare/CourtFinder/internal/core/domain"
)

// Ensure sessionRecorder implements the interface.
var _ cli.SessionControl = (*sessionRecorder)(nil)

// identityFile is the part of the session file source used for sign-in.
type identityFile interface {
	Current() (string, error)
	Login(userID string) error
	Logout() error
}

// eventPublisher announces session changes to other processes.
type eventPublisher interface {
	Publish(ctx context.Context, event domain.SessionEvent) error
}

// sessionRecorder records sign-in locally and, when a publisher is set,
// announces it on the session topic.
type sessionRecorder struct {
	file      identityFile
	publisher eventPublisher
}

func (r *sessionRecorder) Current() (string, error) {
	return r.file.Current()
}

func (r *sessionRecorder) Login(ctx context.Context, userID string) error {
	if err := r.file.Login(userID); err != nil {
		return err
	}
	return r.publish(ctx, domain.LoggedIn(strings.TrimSpace(userID)))
}

func (r *sessionRecorder) Logout(ctx context.Context) error {
	if err := r.file.Logout(); err != nil {
		return err
	}
	return r.publish(ctx, domain.LoggedOut())
}

func (r *sessionRecorder) publish(ctx context.Context, event domain.SessionEvent) error {
	if r.publisher == nil {
		return nil
	}
	if err := r.publisher.Publish(ctx, event); err != nil {
		return fmt.Errorf("publishing %s: %w", event, err)
	}
	return nil
}
