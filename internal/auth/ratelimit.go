package auth

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimiter counts login attempts per client and blocks clients that
// exceed the limit within the window.
type RateLimiter struct {
	mu          sync.Mutex
	attempts    map[string]*attempts
	maxAttempts int
	window      time.Duration
	blockTime   time.Duration
	now         func() time.Time
	stop        chan struct{}
	stopOnce    sync.Once
}

type attempts struct {
	count     int
	firstTry  time.Time
	blockedAt time.Time
}

// NewRateLimiter creates a rate limiter and starts its cleanup loop
func NewRateLimiter(maxAttempts int, window, blockTime time.Duration) *RateLimiter {
	rl := &RateLimiter{
		attempts:    make(map[string]*attempts),
		maxAttempts: maxAttempts,
		window:      window,
		blockTime:   blockTime,
		now:         time.Now,
		stop:        make(chan struct{}),
	}
	go rl.cleanup(5 * time.Minute)
	return rl
}

// DefaultRateLimiter allows 5 attempts per 15 minutes, then blocks for 15 minutes
func DefaultRateLimiter() *RateLimiter {
	return NewRateLimiter(5, 15*time.Minute, 15*time.Minute)
}

// Allow records an attempt for key and reports whether it may proceed
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	a, ok := rl.attempts[key]
	if !ok {
		rl.attempts[key] = &attempts{count: 1, firstTry: now}
		return true
	}

	if !a.blockedAt.IsZero() {
		if now.Sub(a.blockedAt) < rl.blockTime {
			return false
		}
		*a = attempts{count: 1, firstTry: now}
		return true
	}

	if now.Sub(a.firstTry) > rl.window {
		*a = attempts{count: 1, firstTry: now}
		return true
	}

	a.count++
	if a.count > rl.maxAttempts {
		a.blockedAt = now
		return false
	}
	return true
}

// Reset forgets the attempts of key, used after a successful login
func (rl *RateLimiter) Reset(key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.attempts, key)
}

// Remaining returns how many attempts key has left in the current window
func (rl *RateLimiter) Remaining(key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	a, ok := rl.attempts[key]
	if !ok || rl.now().Sub(a.firstTry) > rl.window {
		return rl.maxAttempts
	}
	if !a.blockedAt.IsZero() {
		return 0
	}
	if remaining := rl.maxAttempts - a.count; remaining > 0 {
		return remaining
	}
	return 0
}

// BlockedUntil returns when the block on key expires, or zero time
func (rl *RateLimiter) BlockedUntil(key string) time.Time {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	a, ok := rl.attempts[key]
	if !ok || a.blockedAt.IsZero() {
		return time.Time{}
	}
	until := a.blockedAt.Add(rl.blockTime)
	if rl.now().After(until) {
		return time.Time{}
	}
	return until
}

// Stop ends the cleanup loop
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
		}

		rl.mu.Lock()
		now := rl.now()
		for key, a := range rl.attempts {
			windowExpired := now.Sub(a.firstTry) > rl.window
			blockExpired := a.blockedAt.IsZero() || now.Sub(a.blockedAt) > rl.blockTime
			if windowExpired && blockExpired {
				delete(rl.attempts, key)
			}
		}
		rl.mu.Unlock()
	}
}

// Middleware returns an Echo middleware that rate limits by client IP
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()

			if !rl.Allow(key) {
				blockedUntil := rl.BlockedUntil(key)
				retryAfter := int(blockedUntil.Sub(rl.now()).Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}

				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"error":         "Demasiados intentos de inicio de sesión. Intentá nuevamente más tarde",
					"retry_after":   retryAfter,
					"blocked_until": blockedUntil.Format(time.RFC3339),
				})
			}

			c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(rl.Remaining(key)))
			return next(c)
		}
	}
}

// LoginRateLimiter guards the login endpoint
var LoginRateLimiter = DefaultRateLimiter()
