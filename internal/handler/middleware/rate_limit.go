package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"homestay-checkout/internal/handler/httperr"
	"homestay-checkout/internal/pkg/config"
	"homestay-checkout/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

var ErrRateLimited = errs.New("rate limit exceeded")

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP. Buckets idle for longer
// than a full refill are dropped; they would behave like new ones anyway.
type RateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientBucket
	every     rate.Limit
	burst     int
	idleAfter time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	perMinute := cfg.PerMinute
	if perMinute <= 0 {
		perMinute = 1
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	interval := time.Minute / time.Duration(perMinute)
	return &RateLimiter{
		clients:   make(map[string]*clientBucket),
		every:     rate.Every(interval),
		burst:     burst,
		idleAfter: max(time.Duration(burst)*interval, time.Minute),
		now:       time.Now,
	}
}

func (r *RateLimiter) limiterFor(ip string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if now.Sub(r.lastSweep) >= r.idleAfter {
		r.sweep(now)
	}

	b, ok := r.clients[ip]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(r.every, r.burst)}
		r.clients[ip] = b
	}
	b.lastSeen = now
	return b.limiter
}

func (r *RateLimiter) sweep(now time.Time) {
	for ip, b := range r.clients {
		if now.Sub(b.lastSeen) >= r.idleAfter {
			delete(r.clients, ip)
		}
	}
	r.lastSweep = now
}

func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !r.limiterFor(ip).Allow() {
			slog.Warn("rate limit exceeded", "client_ip", ip, "path", c.FullPath())
			httperr.AbortWithError(c, http.StatusTooManyRequests, ErrRateLimited, "Too many requests. Please try again later.", nil)
			return
		}
		c.Next()
	}
}
