package api

import (
	"sync"

	"golang.org/x/time/rate"
)

// limiterPool keeps one token-bucket limiter per client key.
type limiterPool struct {
	mu    sync.Mutex
	m     map[string]*rate.Limiter
	rps   float64
	burst int
}

func newLimiterPool(rps float64, burst int) *limiterPool {
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 3
	}
	return &limiterPool{
		m:     make(map[string]*rate.Limiter),
		rps:   rps,
		burst: burst,
	}
}

// Allow reports whether the client identified by key may proceed.
func (p *limiterPool) Allow(key string) bool {
	p.mu.Lock()
	l, ok := p.m[key]
	if !ok {
		l = rate.NewLimiter(rate.Limit(p.rps), p.burst)
		p.m[key] = l
	}
	p.mu.Unlock()
	return l.Allow()
}
