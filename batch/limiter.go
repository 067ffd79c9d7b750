package batch

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter throttles requests per host.
type Limiter interface {
	Wait(ctx context.Context, host string) error
}

var _ Limiter = (*HostLimiter)(nil)

// HostLimiter keeps one token bucket per host, so fetches to different hosts
// proceed concurrently while each host sees at most rps requests per second.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewHostLimiter returns a HostLimiter allowing rps requests per second to
// each host, without bursting.
func NewHostLimiter(rps float64) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until a request to host is allowed or ctx is done.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	l.mu.Lock()
	limiter, ok := l.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(l.rps), 1)
		l.limiters[host] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}
