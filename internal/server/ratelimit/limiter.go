// Package ratelimit limits requests per client address with token buckets, one bucket per
// client and route tier.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Info describes the bucket a request was charged to
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

type bucket struct {
	lim     *rate.Limiter
	updated time.Time
}

func newBucket(rule Rule, now time.Time) *bucket {
	every := rule.Window / time.Duration(rule.Limit)
	return &bucket{lim: rate.NewLimiter(rate.Every(every), rule.capacity()), updated: now}
}

// take spends one token if one is available at now
func (b *bucket) take(now time.Time) (bool, int, time.Time, time.Duration) {
	b.updated = now
	ok := b.lim.AllowN(now, 1)

	tokens := b.lim.TokensAt(now)
	perSec := float64(b.lim.Limit())
	full := now.Add(seconds((float64(b.lim.Burst()) - tokens) / perSec))
	var wait time.Duration
	if !ok {
		wait = seconds((1 - tokens) / perSec)
	}
	return ok, int(max(tokens, 0)), full, wait
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Limiter charges requests against per-client buckets. It is safe for concurrent use.
type Limiter struct {
	cfg Config
	now func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket

	stop     chan struct{}
	stopOnce sync.Once
}

// New creates a Limiter and starts its sweeper. A nil config reads FromEnv.
func New(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = FromEnv()
	}
	l := &Limiter{
		cfg:     *cfg,
		now:     time.Now,
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
	}
	if l.cfg.Enabled && l.cfg.SweepEvery > 0 {
		go l.sweepLoop(l.cfg.SweepEvery)
	}
	return l
}

// Allow charges one request from client to the rule matching method and path
func (l *Limiter) Allow(client, path, method string) (bool, Info) {
	switch {
	case !l.cfg.Enabled, l.cfg.Allow[client]:
		return true, Info{Allowed: true}
	case l.cfg.Deny[client]:
		return false, Info{}
	}

	rule := l.match(method, path)
	if rule.Limit <= 0 || rule.Window <= 0 {
		return true, Info{Allowed: true}
	}

	key := client + "|" + rule.Name + "|" + method
	now := l.now()

	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		b = newBucket(rule, now)
		l.buckets[key] = b
	}
	allowed, remaining, full, wait := b.take(now)
	l.mu.Unlock()

	return allowed, Info{
		Allowed:    allowed,
		Limit:      rule.Limit,
		Remaining:  remaining,
		ResetTime:  full,
		RetryAfter: wait,
	}
}

func (l *Limiter) match(method, path string) Rule {
	for _, r := range l.cfg.Rules {
		if r.matches(method, path) {
			if r.Name == "" {
				r.Name = r.Path
			}
			return r
		}
	}
	r := l.cfg.Default
	if r.Name == "" {
		r.Name = "default"
	}
	return r
}

func (l *Limiter) sweepLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.sweep()
		case <-l.stop:
			return
		}
	}
}

// sweep drops buckets that have not been charged for IdleAfter
func (l *Limiter) sweep() {
	idle := l.cfg.IdleAfter
	if idle <= 0 {
		idle = time.Hour
	}
	cutoff := l.now().Add(-idle)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.updated.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop ends the sweeper. It may be called more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}
