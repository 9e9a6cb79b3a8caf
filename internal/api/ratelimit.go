package api

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimiter caps requests per client over a fixed window. Used on the
// opportunity endpoint, which recomputes scores when dashboards poll
// aggressively.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
	max     int
	window  time.Duration
}

type clientWindow struct {
	count   int
	started time.Time
}

// NewRateLimiter allows max requests per client per window.
func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*clientWindow),
		max:     max,
		window:  window,
	}
}

// Allow records a request for the client and reports whether it is within
// the limit. Stale windows are pruned opportunistically on rollover.
func (rl *RateLimiter) Allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cw, ok := rl.clients[client]
	if !ok || now.Sub(cw.started) >= rl.window {
		rl.prune(now)
		rl.clients[client] = &clientWindow{count: 1, started: now}
		return true
	}
	if cw.count < rl.max {
		cw.count++
		return true
	}
	return false
}

// RetryAfter returns whole seconds until the client's window rolls over.
func (rl *RateLimiter) RetryAfter(client string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cw, ok := rl.clients[client]
	if !ok {
		return 0
	}
	left := rl.window - time.Since(cw.started)
	if left <= 0 {
		return 0
	}
	return int(left.Seconds()) + 1
}

// prune drops windows stale for more than a full extra period. Caller holds
// the lock.
func (rl *RateLimiter) prune(now time.Time) {
	for client, cw := range rl.clients {
		if now.Sub(cw.started) > 2*rl.window {
			delete(rl.clients, client)
		}
	}
}

// RateLimitMiddleware answers 429 with a Retry-After header once a client
// exceeds the limit.
func RateLimitMiddleware(rl *RateLimiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client := clientAddr(r)
		if !rl.Allow(client) {
			w.Header().Set("Retry-After", strconv.Itoa(rl.RetryAfter(client)))
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

// clientAddr identifies the requester: the first X-Forwarded-For hop when
// proxied, otherwise the socket address without its port.
func clientAddr(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
