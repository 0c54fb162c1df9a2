/*
# Module: handlers/middleware.go
HTTP middleware: API key auth, panic recovery, per-client rate limiting.

## Linked Modules
- [types/api](../types/api.go) - Response structures

## Tags
http, middleware, auth, rate-limit

## Exports
APIKeyAuth, Recover, RateLimit, NewRateLimiter

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "handlers/middleware.go" ;
    code:description "HTTP middleware: API key auth, panic recovery, per-client rate limiting" ;
    code:linksTo [
        code:name "types/api" ;
        code:path "../types/api.go" ;
        code:relationship "Response structures"
    ] ;
    code:exports :APIKeyAuth, :Recover, :RateLimit, :NewRateLimiter ;
    code:tags "http", "middleware", "auth", "rate-limit" .
<!-- End LinkedDoc RDF -->
*/
package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"location-ingest/types"
)

// APIKeyAuth checks the opaque platform-provided key on every request.
// An empty configured key disables the check (the hosting platform
// fronts its own auth in that deployment).
func APIKeyAuth(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey != "" && r.Header.Get("X-API-Key") != apiKey {
				log.Printf("⚠️  Rejected request with bad API key from %s", clientIP(r))
				writeJSON(w, http.StatusUnauthorized, types.ErrorResponse{Message: "Unauthorized"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Recover converts handler panics into the generic 500 contract so
// internals never leak to the caller.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("❌ Panic handling %s %s: %v", r.Method, r.URL.Path, rec)
				writeJSON(w, http.StatusInternalServerError, types.ErrorResponse{Message: "Internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// RateLimiter tracks submission timestamps per client in a sliding
// one-hour window.
type RateLimiter struct {
	limits     map[string][]time.Time
	maxPerHour int
	mutex      sync.Mutex
}

// NewRateLimiter creates a rate limiter allowing maxPerHour
// submissions per client. Old entries are swept every five minutes.
func NewRateLimiter(maxPerHour int) *RateLimiter {
	rl := &RateLimiter{
		limits:     make(map[string][]time.Time),
		maxPerHour: maxPerHour,
	}
	go rl.cleanupOldTimestamps()
	return rl
}

// Allow checks whether the client is within its limit and records the
// submission when it is. resetTime says when the oldest submission
// leaves the window.
func (rl *RateLimiter) Allow(client string) (allowed bool, resetTime time.Time) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := time.Now()
	hourAgo := now.Add(-1 * time.Hour)

	filtered := rl.limits[client][:0]
	for _, ts := range rl.limits[client] {
		if ts.After(hourAgo) {
			filtered = append(filtered, ts)
		}
	}

	if len(filtered) >= rl.maxPerHour {
		rl.limits[client] = filtered
		return false, filtered[0].Add(1 * time.Hour)
	}

	rl.limits[client] = append(filtered, now)
	return true, now.Add(1 * time.Hour)
}

// cleanupOldTimestamps drops stale clients so the map stays bounded.
func (rl *RateLimiter) cleanupOldTimestamps() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mutex.Lock()
		hourAgo := time.Now().Add(-1 * time.Hour)
		for client, timestamps := range rl.limits {
			filtered := []time.Time{}
			for _, ts := range timestamps {
				if ts.After(hourAgo) {
					filtered = append(filtered, ts)
				}
			}
			if len(filtered) == 0 {
				delete(rl.limits, client)
			} else {
				rl.limits[client] = filtered
			}
		}
		rl.mutex.Unlock()
	}
}

// RateLimit applies the limiter per client IP. A nil limiter or a
// limit of zero or less disables the middleware.
func RateLimit(rl *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rl == nil || rl.maxPerHour <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, resetTime := rl.Allow(clientIP(r))
			if !allowed {
				w.Header().Set("Retry-After", strconv.Itoa(int(time.Until(resetTime).Seconds())))
				writeJSON(w, http.StatusTooManyRequests, types.ErrorResponse{Message: "Rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP extracts the real client IP from a request.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
