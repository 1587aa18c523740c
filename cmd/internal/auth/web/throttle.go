package web

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"warasin/cmd/internal/httpjson"
)

type lockoutTier struct {
	Threshold int
	Duration  time.Duration
}

// loginThrottle tracks rejected logins per client IP in memory.
// A rejected login is one whose token the backend refused or that did not decode.
type loginThrottle struct {
	mu       sync.Mutex
	now      func() time.Time
	max      int
	window   time.Duration
	tiers    []lockoutTier
	retain   time.Duration
	failures map[string][]time.Time

	// Keys whose client never returns are dropped by a periodic sweep in fail.
	sweepEvery time.Duration
	lastSweep  time.Time
}

func newLoginThrottle(cfg Config, now func() time.Time) *loginThrottle {
	if now == nil {
		now = time.Now
	}

	// Most severe tier first.
	tiers := []lockoutTier{
		{Threshold: cfg.LockoutSevereThreshold, Duration: cfg.LockoutSevereDuration},
		{Threshold: cfg.LockoutLongThreshold, Duration: cfg.LockoutLongDuration},
		{Threshold: cfg.LockoutShortThreshold, Duration: cfg.LockoutShortDuration},
	}

	retain := cfg.LoginIPWindow
	for _, t := range tiers {
		if t.Duration > retain {
			retain = t.Duration
		}
	}

	sweepEvery := retain
	if sweepEvery < time.Minute {
		sweepEvery = time.Minute
	}

	return &loginThrottle{
		now:        now,
		max:        cfg.LoginIPMax,
		window:     cfg.LoginIPWindow,
		tiers:      tiers,
		retain:     retain,
		failures:   make(map[string][]time.Time),
		sweepEvery: sweepEvery,
		lastSweep:  now(),
	}
}

// check reports whether key is currently blocked and for how long.
func (t *loginThrottle) check(key string) (bool, time.Duration) {
	if t == nil || key == "" {
		return false, 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	failures := t.prune(key, now)

	if blocked, retry := evaluateProgressiveLockout(now, failures, t.tiers); blocked {
		return true, retry
	}
	return evaluateWindowThrottle(now, failures, t.max, t.window)
}

func (t *loginThrottle) fail(key string) {
	if t == nil || key == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if now.Sub(t.lastSweep) >= t.sweepEvery {
		t.sweep(now)
	}
	t.failures[key] = append(t.prune(key, now), now)
}

// sweep prunes every key. Caller holds mu.
func (t *loginThrottle) sweep(now time.Time) {
	for key := range t.failures {
		t.prune(key, now)
	}
	t.lastSweep = now
}

func (t *loginThrottle) reset(key string) {
	if t == nil || key == "" {
		return
	}
	t.mu.Lock()
	delete(t.failures, key)
	t.mu.Unlock()
}

// prune drops failures older than the longest horizon. Caller holds mu.
func (t *loginThrottle) prune(key string, now time.Time) []time.Time {
	failures := t.failures[key]
	cut := now.Add(-t.retain)

	kept := failures[:0]
	for _, f := range failures {
		if f.After(cut) {
			kept = append(kept, f)
		}
	}
	if len(kept) == 0 {
		delete(t.failures, key)
		return nil
	}
	t.failures[key] = kept
	return kept
}

// evaluateWindowThrottle blocks once max failures fall inside the sliding window.
// The retry hint is when the oldest in-window failure ages out.
func evaluateWindowThrottle(now time.Time, failures []time.Time, max int, window time.Duration) (bool, time.Duration) {
	if max <= 0 || window <= 0 {
		return false, 0
	}
	cut := now.Add(-window)

	count := 0
	var oldest time.Time
	for _, f := range failures {
		if !f.After(cut) {
			continue
		}
		count++
		if oldest.IsZero() || f.Before(oldest) {
			oldest = f
		}
	}
	if count < max {
		return false, 0
	}
	return true, oldest.Add(window).Sub(now)
}

// evaluateProgressiveLockout applies the first tier whose threshold is met and
// whose lock, counted from the latest failure, is still running.
func evaluateProgressiveLockout(now time.Time, failures []time.Time, tiers []lockoutTier) (bool, time.Duration) {
	if len(failures) == 0 {
		return false, 0
	}

	latest := failures[0]
	for _, f := range failures[1:] {
		if f.After(latest) {
			latest = f
		}
	}

	for _, tier := range tiers {
		if tier.Threshold <= 0 || tier.Duration <= 0 || len(failures) < tier.Threshold {
			continue
		}
		until := latest.Add(tier.Duration)
		if until.After(now) {
			return true, until.Sub(now)
		}
	}
	return false, 0
}

// clientIP uses the connection peer only; forwarding headers are not trusted.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err != nil {
		host = strings.TrimSpace(r.RemoteAddr)
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.String()
	}
	return ""
}

func writeRateLimited(w http.ResponseWriter, retryAfter time.Duration) {
	if retryAfter > 0 {
		secs := int64(retryAfter / time.Second)
		if retryAfter%time.Second != 0 {
			secs++
		}
		w.Header().Set("Retry-After", strconv.FormatInt(secs, 10))
	}
	httpjson.WriteError(w, http.StatusTooManyRequests, "too many attempts")
}
