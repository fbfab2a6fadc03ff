package server

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimit returns a token-bucket middleware allowing perMinute requests
// per client IP, with a burst of perMinute/4. A non-positive limit disables
// limiting. Idle client buckets are evicted after a few minutes.
func RateLimit(perMinute int) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	burst := perMinute / 4
	if burst < 1 {
		burst = 1
	}
	limit := rate.Every(time.Minute / time.Duration(perMinute))

	type client struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}
	var (
		mu      sync.Mutex
		clients = make(map[string]*client)
	)

	lookup := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		now := time.Now()
		c, ok := clients[key]
		if !ok {
			c = &client{limiter: rate.NewLimiter(limit, burst)}
			clients[key] = c
			if len(clients) > 1000 {
				for k, v := range clients {
					if now.Sub(v.lastSeen) > 3*time.Minute {
						delete(clients, k)
					}
				}
			}
		}
		c.lastSeen = now
		return c.limiter
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}
			if !lookup(host).Allow() {
				w.Header().Set("Retry-After", "60")
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
