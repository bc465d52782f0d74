package services

import (
	"math/rand/v2"
	"sync"
	"time"
)

type options struct {
	now func() time.Time
	src rand.Source
}

// Option configures the clock and randomness of a service
type Option func(o *options)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithRandSource makes generated values reproducible
func WithRandSource(src rand.Source) Option {
	return func(o *options) {
		o.src = src
	}
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.now == nil {
		o.now = time.Now
	}
	if o.src == nil {
		o.src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return o
}

// lockedRand serializes access to a rand.Rand shared across requests.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func newLockedRand(src rand.Source) *lockedRand {
	return &lockedRand{r: rand.New(src)}
}

// between returns a uniform int in [lo, hi].
func (l *lockedRand) between(lo, hi int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return lo + l.r.IntN(hi-lo+1)
}

func pick[T any](l *lockedRand, items []T) T {
	return items[l.between(0, len(items)-1)]
}
