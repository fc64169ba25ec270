package http

import (
	"context"
	"testing"
	"time"
)

func TestNewRateLimiter(t *testing.T) {
	cfg := DefaultRateLimiterConfig()
	rl := NewRateLimiter(cfg)

	if rl == nil {
		t.Fatal("NewRateLimiter returned nil")
	}
	if rl.Interval() != DefaultPageInterval {
		t.Errorf("Interval() = %v, want %v", rl.Interval(), DefaultPageInterval)
	}
}

func TestRateLimiterWait(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Interval: 100 * time.Millisecond})
	ctx := context.Background()

	// First request should not wait
	start := time.Now()
	if err := rl.Wait(ctx); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("first request took %v, expected no delay", elapsed)
	}
	if rl.Waits() != 0 {
		t.Errorf("Waits() = %d after first request, want 0", rl.Waits())
	}

	// Second request should wait ~100ms
	start = time.Now()
	if err := rl.Wait(ctx); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("second request took %v, expected ~100ms", elapsed)
	}
	if rl.Waits() != 1 {
		t.Errorf("Waits() = %d after second request, want 1", rl.Waits())
	}
}

func TestRateLimiterContextCanceled(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Interval: time.Second})

	ctx, cancel := context.WithCancel(context.Background())

	// First request succeeds
	if err := rl.Wait(ctx); err != nil {
		t.Fatalf("First Wait failed: %v", err)
	}

	cancel()

	if err := rl.Wait(ctx); err == nil {
		t.Error("expected error from canceled context")
	}
}

func TestRateLimiterDisabled(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{})

	start := time.Now()
	for i := 0; i < 5; i++ {
		if err := rl.Wait(context.Background()); err != nil {
			t.Fatalf("Wait failed: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("disabled limiter took %v", elapsed)
	}
}

func TestRateLimiterNilSafety(t *testing.T) {
	var rl *RateLimiter
	if err := rl.Wait(context.Background()); err != nil {
		t.Errorf("nil Wait returned %v", err)
	}
	if rl.Waits() != 0 || rl.Interval() != 0 {
		t.Error("nil limiter should report zero values")
	}
}
