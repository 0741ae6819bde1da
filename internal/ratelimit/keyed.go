package ratelimit

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// Keyed holds one token bucket per key. Buckets of inactive keys are
// evicted after ttl.
type Keyed[K comparable] struct {
	mutex    sync.Mutex
	cache    *expirable.LRU[K, *rate.Limiter]
	interval time.Duration
	burst    int
}

func (k *Keyed[K]) Limiter(key K) *rate.Limiter {
	k.mutex.Lock()
	defer k.mutex.Unlock()

	limiter, exists := k.cache.Get(key)
	if !exists {
		limiter = rate.NewLimiter(rate.Every(k.interval), k.burst)
		k.cache.Add(key, limiter)
	}

	return limiter
}

// Allow reports whether an event for key may happen now, consuming a token
// if so
func (k *Keyed[K]) Allow(key K) bool {
	return k.Limiter(key).Allow()
}

func (k *Keyed[K]) Burst() int {
	return k.burst
}

func NewKeyed[K comparable](interval time.Duration, burst int, cacheSize int, ttl time.Duration) *Keyed[K] {
	return &Keyed[K]{
		cache:    expirable.NewLRU[K, *rate.Limiter](cacheSize, nil, ttl),
		interval: interval,
		burst:    burst,
	}
}
