package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
	"github.com/rdkhare/CourtFinder/internal/core/ports/driven"
	"github.com/rdkhare/CourtFinder/internal/core/ports/driving"
	"github.com/rdkhare/CourtFinder/internal/logger"
)

var watcherLog = logger.Component("watcher")

// Watcher feeds location and session changes into the courts service for
// the lifetime of a long-running command.
type Watcher struct {
	courts   driving.CourtsService
	location driven.LocationSource
	session  driven.SessionSource
}

// NewWatcher creates a watcher. Either source may be nil.
func NewWatcher(courts driving.CourtsService, location driven.LocationSource, session driven.SessionSource) *Watcher {
	return &Watcher{
		courts:   courts,
		location: location,
		session:  session,
	}
}

// Run blocks until ctx is cancelled. Failures of individual updates are
// logged and never stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	if w.session != nil {
		events, err := w.session.Events(ctx)
		if err != nil {
			return fmt.Errorf("starting session source: %w", err)
		}
		g.Go(func() error {
			w.consumeSessions(ctx, events)
			return nil
		})
	}

	if w.location != nil {
		updates, err := w.location.Updates(ctx)
		if err != nil {
			return fmt.Errorf("starting location source: %w", err)
		}
		g.Go(func() error {
			w.consumeLocations(ctx, updates)
			return nil
		})
	}

	watcherLog.Debug("running (session=%t, location=%t)", w.session != nil, w.location != nil)
	return g.Wait()
}

func (w *Watcher) consumeSessions(ctx context.Context, events <-chan domain.SessionEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			watcherLog.Debug("session event %s", event)
			if err := w.courts.HandleSessionEvent(ctx, event); err != nil {
				watcherLog.Error("applying %s: %v", event, err)
			}
		}
	}
}

func (w *Watcher) consumeLocations(ctx context.Context, updates <-chan domain.Coordinate) {
	for {
		select {
		case <-ctx.Done():
			return
		case point, ok := <-updates:
			if !ok {
				return
			}
			watcherLog.Debug("location update %s", point)
			if err := w.courts.FetchCourtsIfNeeded(ctx, point); err != nil {
				watcherLog.Error("fetching courts near %s: %v", point, err)
			}
		}
	}
}
