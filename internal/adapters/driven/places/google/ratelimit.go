package google

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultRequestsPerSecond keeps well under the Places per-key quota.
const DefaultRequestsPerSecond = 5.0

const defaultBackoff = 60 * time.Second

// RateLimiter paces Places requests with a token bucket and honours
// server-requested backoff.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
	now     func() time.Time
}

// NewRateLimiter creates a limiter. Non-positive rates take the default.
func NewRateLimiter(requestsPerSecond float64) *RateLimiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = DefaultRequestsPerSecond
	}
	burst := int(requestsPerSecond)
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		now:     time.Now,
	}
}

// Wait blocks until a request may be sent or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if delay := r.backoff(); delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return r.limiter.Wait(ctx)
}

// Backoff delays the next request. A non-positive duration means one minute.
func (r *RateLimiter) Backoff(d time.Duration) {
	if d <= 0 {
		d = defaultBackoff
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if at := r.now().Add(d); at.After(r.retryAt) {
		r.retryAt = at
	}
}

// Allow reports whether a request could be sent right now, consuming a token if so.
func (r *RateLimiter) Allow() bool {
	if r.backoff() > 0 {
		return false
	}
	return r.limiter.Allow()
}

func (r *RateLimiter) backoff() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.retryAt.Sub(r.now())
}
