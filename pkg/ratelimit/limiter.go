package ratelimit

import (
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/time/rate"
)

// Limiter keeps one token bucket per key (usually the client ip). The least
// recently seen keys are evicted when the cache is full.
type Limiter struct {
	mu      sync.Mutex
	buckets *lru.Cache
	rate    rate.Limit
	burst   int
}

func New(rps float64, burst, size int) (*Limiter, error) {
	buckets, err := lru.New(size)
	if err != nil {
		return nil, err
	}

	return &Limiter{buckets: buckets, rate: rate.Limit(rps), burst: burst}, nil
}

func (l *Limiter) Allow(key string) bool {
	return l.get(key).Allow()
}

func (l *Limiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if v, ok := l.buckets.Get(key); ok {
		return v.(*rate.Limiter)
	}

	limiter := rate.NewLimiter(l.rate, l.burst)
	l.buckets.Add(key, limiter)
	return limiter
}
