package ratelimit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

// testLimiter returns a limiter without a sweeper whose clock only moves when advanced
func testLimiter(t *testing.T, cfg Config) (*Limiter, *clock) {
	t.Helper()
	l := New(&cfg)
	t.Cleanup(l.Stop)
	c := &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	l.now = c.now
	return l, c
}

func parseConfig() Config {
	return Config{
		Enabled: true,
		Rules:   DefaultRules(3),
		Default: Rule{Limit: 5, Window: time.Minute},
	}
}

func TestRule_Matches(t *testing.T) {
	parse := Rule{Method: "POST", Path: "/history/parse"}
	users := Rule{Method: "PUT", Path: "/users/"}

	tests := []struct {
		name   string
		rule   Rule
		method string
		path   string
		want   bool
	}{
		{"parse route", parse, "POST", "/users/42/history/parse", true},
		{"parse stream sub-path", parse, "POST", "/users/42/history/parse/stream", true},
		{"wrong method", parse, "GET", "/users/42/history/parse", false},
		{"partial segment", parse, "POST", "/users/42/history/parser", false},
		{"prefix rule", users, "PUT", "/users/42/history/contact", true},
		{"prefix must lead", users, "PUT", "/api/users/42", false},
		{"any method", Rule{Path: "/health"}, "HEAD", "/health", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.matches(tt.method, tt.path))
		})
	}
}

func TestAllow_BurstThenRefill(t *testing.T) {
	l, c := testLimiter(t, Config{Enabled: true, Default: Rule{Limit: 60, Window: time.Minute, Burst: 2}})

	ok, info := l.Allow("10.0.0.1", "/users/1/history", "GET")
	assert.True(t, ok)
	assert.Equal(t, 60, info.Limit)
	assert.Equal(t, 1, info.Remaining)

	ok, _ = l.Allow("10.0.0.1", "/users/1/history", "GET")
	assert.True(t, ok)

	ok, info = l.Allow("10.0.0.1", "/users/1/history", "GET")
	assert.False(t, ok)
	assert.Equal(t, time.Second, info.RetryAfter)
	assert.True(t, info.ResetTime.After(c.now()))

	c.advance(time.Second)
	ok, _ = l.Allow("10.0.0.1", "/users/1/history", "GET")
	assert.True(t, ok)
}

func TestAllow_ParseTierSharedWithStream(t *testing.T) {
	l, _ := testLimiter(t, parseConfig())

	ok, info := l.Allow("10.0.0.1", "/users/1/history/parse", "POST")
	require.True(t, ok)
	assert.Equal(t, 3, info.Limit)
	ok, _ = l.Allow("10.0.0.1", "/users/1/history/parse/stream", "POST")
	require.True(t, ok)

	ok, _ = l.Allow("10.0.0.1", "/users/1/history/parse/stream", "POST")
	assert.False(t, ok)

	// other tiers and other clients keep their own buckets
	ok, _ = l.Allow("10.0.0.1", "/users/1/history", "PUT")
	assert.True(t, ok)
	ok, _ = l.Allow("10.0.0.2", "/users/1/history/parse", "POST")
	assert.True(t, ok)
}

func TestAllow_HealthUnlimited(t *testing.T) {
	l, _ := testLimiter(t, parseConfig())

	for range 20 {
		ok, info := l.Allow("10.0.0.1", "/health", "GET")
		require.True(t, ok)
		assert.Zero(t, info.Limit)
	}
}

func TestAllow_ClientLists(t *testing.T) {
	cfg := parseConfig()
	cfg.Allow = map[string]bool{"10.0.0.9": true}
	cfg.Deny = map[string]bool{"10.0.0.66": true}
	l, _ := testLimiter(t, cfg)

	for range 10 {
		ok, _ := l.Allow("10.0.0.9", "/users/1/history/parse", "POST")
		require.True(t, ok)
	}
	ok, info := l.Allow("10.0.0.66", "/health", "GET")
	assert.False(t, ok)
	assert.False(t, info.Allowed)
}

func TestAllow_Disabled(t *testing.T) {
	l, _ := testLimiter(t, Config{Enabled: false, Default: Rule{Limit: 1, Window: time.Hour}})

	for range 5 {
		ok, _ := l.Allow("10.0.0.1", "/users/1/history", "GET")
		require.True(t, ok)
	}
}

func TestAllow_Concurrent(t *testing.T) {
	l, _ := testLimiter(t, Config{Enabled: true, Default: Rule{Limit: 50, Window: time.Hour}})

	var allowed atomic.Int32
	var wg sync.WaitGroup
	for range 200 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("10.0.0.1", "/users/1/documents", "GET"); ok {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(50), allowed.Load())
}

func TestSweep_DropsIdleBuckets(t *testing.T) {
	l, c := testLimiter(t, Config{Enabled: true, Default: Rule{Limit: 1, Window: time.Hour}, IdleAfter: 10 * time.Minute})

	ok, _ := l.Allow("10.0.0.1", "/users/1/history", "GET")
	require.True(t, ok)
	ok, _ = l.Allow("10.0.0.1", "/users/1/history", "GET")
	require.False(t, ok)

	c.advance(11 * time.Minute)
	l.sweep()
	assert.Empty(t, l.buckets)

	ok, _ = l.Allow("10.0.0.1", "/users/1/history", "GET")
	assert.True(t, ok)
}

func TestStop_Idempotent(t *testing.T) {
	l := New(&Config{Enabled: true, SweepEvery: time.Millisecond})
	assert.NotPanics(t, func() {
		l.Stop()
		l.Stop()
	})
}

func TestFromEnv(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_PARSE_PER_HOUR", "4")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")
	t.Setenv("RATE_LIMIT_ALLOW", " 10.0.0.1, ,10.0.0.2")

	cfg := FromEnv()

	assert.False(t, cfg.Enabled)
	assert.Equal(t, 1000, cfg.Default.Limit)
	assert.Equal(t, map[string]bool{"10.0.0.1": true, "10.0.0.2": true}, cfg.Allow)
	assert.Empty(t, cfg.Deny)
	var parse Rule
	for _, r := range cfg.Rules {
		if r.Name == "parse" {
			parse = r
		}
	}
	assert.Equal(t, 4, parse.Limit)
	assert.Equal(t, time.Hour, parse.Window)
}
