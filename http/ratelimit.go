package http

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultPageInterval is the pause inserted between successive paginated
// Data API requests.
const DefaultPageInterval = 100 * time.Millisecond

// RateLimiter spaces successive requests by a fixed interval using a token
// bucket of size one. The first request never waits.
type RateLimiter struct {
	limiter *rate.Limiter
	mu      sync.Mutex
	waits   int
	config  RateLimiterConfig
}

// RateLimiterConfig defines rate limiting behavior.
type RateLimiterConfig struct {
	// Interval is the minimum spacing between two requests.
	// Zero disables limiting.
	Interval time.Duration
}

// DefaultRateLimiterConfig returns the pacing used between pagination requests.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		Interval: DefaultPageInterval,
	}
}

// NewRateLimiter creates a new rate limiter with the given configuration.
func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	rl := &RateLimiter{config: cfg}
	if cfg.Interval > 0 {
		rl.limiter = rate.NewLimiter(rate.Every(cfg.Interval), 1)
	}
	return rl
}

// Wait blocks until the next request is allowed.
// Returns an error if the context is canceled or exceeded deadline.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl == nil || rl.limiter == nil {
		return nil
	}

	reservation := rl.limiter.Reserve()
	if !reservation.OK() {
		return fmt.Errorf("rate limit: cannot reserve token")
	}

	delay := reservation.Delay()
	if delay == 0 {
		return nil
	}

	rl.mu.Lock()
	rl.waits++
	rl.mu.Unlock()

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		reservation.Cancel()
		return ctx.Err()
	}
}

// Waits returns how many calls to Wait had to pause.
func (rl *RateLimiter) Waits() int {
	if rl == nil {
		return 0
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.waits
}

// Interval returns the configured spacing.
func (rl *RateLimiter) Interval() time.Duration {
	if rl == nil {
		return 0
	}
	return rl.config.Interval
}
