package services

import (
	"sync"

	"github.com/google/uuid"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
)

// snapshotPublisher fans snapshots out to subscribers.
// Each subscriber holds at most one pending snapshot; a newer one replaces it.
type snapshotPublisher struct {
	mu   sync.Mutex
	subs map[uuid.UUID]chan domain.CourtsSnapshot
}

func newSnapshotPublisher() *snapshotPublisher {
	return &snapshotPublisher{subs: make(map[uuid.UUID]chan domain.CourtsSnapshot)}
}

func (p *snapshotPublisher) subscribe() (uuid.UUID, <-chan domain.CourtsSnapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := uuid.New()
	ch := make(chan domain.CourtsSnapshot, 1)
	p.subs[id] = ch
	return id, ch
}

func (p *snapshotPublisher) unsubscribe(id uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if ch, ok := p.subs[id]; ok {
		delete(p.subs, id)
		close(ch)
	}
}

func (p *snapshotPublisher) publish(snap domain.CourtsSnapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, ch := range p.subs {
		select {
		case ch <- snap:
			continue
		default:
		}
		// Drop the undelivered snapshot so the latest one wins.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

func (p *snapshotPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.subs)
}
