package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Rule limits one class of requests. Every path a rule matches draws from the same bucket.
type Rule struct {
	Name string

	// Method is matched exactly; empty matches any method
	Method string

	// Path is a run of path segments that may appear anywhere in the request path, so
	// "/history/parse" covers /users/{id}/history/parse and its /stream sub-path.
	// A Path ending in "/" must start the request path instead.
	Path string

	// Limit requests per Window; zero means unlimited
	Limit  int
	Window time.Duration

	// Burst is the bucket capacity, Limit when zero
	Burst int
}

func (r Rule) matches(method, path string) bool {
	if r.Method != "" && r.Method != method {
		return false
	}
	if strings.HasSuffix(r.Path, "/") {
		return strings.HasPrefix(path, r.Path)
	}
	return strings.HasSuffix(path, r.Path) || strings.Contains(path, r.Path+"/")
}

func (r Rule) capacity() int {
	if r.Burst > 0 {
		return r.Burst
	}
	return r.Limit
}

// Config holds rate limiting configuration
type Config struct {
	Enabled bool

	// Rules are tried in order and the first match wins
	Rules []Rule

	// Default applies to requests no rule matches
	Default Rule

	// Allow and Deny are client addresses that skip limiting or are always refused
	Allow map[string]bool
	Deny  map[string]bool

	// Buckets unused for IdleAfter are dropped every SweepEvery
	IdleAfter  time.Duration
	SweepEvery time.Duration
}

// DefaultRules returns the route tiers of the API. parsesPerHour bounds history parse runs,
// each of which may call the AI provider five times.
func DefaultRules(parsesPerHour int) []Rule {
	return []Rule{
		{Name: "health", Method: "GET", Path: "/health"},
		{Name: "parse", Method: "POST", Path: "/history/parse", Limit: parsesPerHour, Window: time.Hour, Burst: 2},
		{Name: "write", Method: "POST", Path: "/users/", Limit: 100, Window: time.Minute, Burst: 10},
		{Name: "write", Method: "PUT", Path: "/users/", Limit: 100, Window: time.Minute, Burst: 10},
	}
}

// FromEnv builds a Config from RATE_LIMIT_* environment variables
func FromEnv() *Config {
	return &Config{
		Enabled: envOr("RATE_LIMIT_ENABLED", true, strconv.ParseBool),
		Rules:   DefaultRules(envOr("RATE_LIMIT_PARSE_PER_HOUR", 10, strconv.Atoi)),
		Default: Rule{
			Name:   "default",
			Limit:  envOr("RATE_LIMIT_PER_MINUTE", 1000, strconv.Atoi),
			Window: time.Minute,
		},
		Allow:      addressSet(os.Getenv("RATE_LIMIT_ALLOW")),
		Deny:       addressSet(os.Getenv("RATE_LIMIT_DENY")),
		IdleAfter:  time.Hour,
		SweepEvery: envOr("RATE_LIMIT_SWEEP_INTERVAL", 5*time.Minute, time.ParseDuration),
	}
}

// envOr parses the variable key, returning def when it is unset or malformed
func envOr[T any](key string, def T, parse func(string) (T, error)) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		return def
	}
	return v
}

func addressSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, addr := range strings.Split(list, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			set[addr] = true
		}
	}
	return set
}
