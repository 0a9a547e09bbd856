package fireblocks

import (
	"testing"
	"time"

	"github.com/relaedzc/simple-fireblocks-service/internal/config"
)

func TestBackoffFirstAttemptHasNoDelay(t *testing.T) {
	cfg := config.RetryConfig{InitialBackoff: 100 * time.Millisecond, MaxBackoff: time.Second, Multiplier: 2}
	if d := backoffFor(cfg, 1); d != 0 {
		t.Fatalf("backoff before first attempt = %v, want 0", d)
	}
}

func TestBackoffGrowsExponentiallyToCap(t *testing.T) {
	cfg := config.RetryConfig{
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     500 * time.Millisecond,
		Multiplier:     2,
	}

	want := []time.Duration{
		100 * time.Millisecond, // attempt 2
		200 * time.Millisecond, // attempt 3
		400 * time.Millisecond, // attempt 4
		500 * time.Millisecond, // attempt 5, capped
		500 * time.Millisecond, // attempt 6, capped
	}
	for i, w := range want {
		if d := backoffFor(cfg, i+2); d != w {
			t.Fatalf("backoff(attempt=%d) = %v, want %v", i+2, d, w)
		}
	}
}

func TestBackoffIsMonotonicallyNonDecreasing(t *testing.T) {
	cfg := config.RetryConfig{
		InitialBackoff: 50 * time.Millisecond,
		MaxBackoff:     2 * time.Second,
		Multiplier:     2,
	}
	prev := time.Duration(0)
	for attempt := 2; attempt <= 10; attempt++ {
		d := backoffFor(cfg, attempt)
		if d < prev {
			t.Fatalf("backoff decreased at attempt %d: %v < %v", attempt, d, prev)
		}
		prev = d
	}
}

func TestBackoffJitterStaysWithinBounds(t *testing.T) {
	cfg := config.RetryConfig{
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     10 * time.Second,
		Multiplier:     2,
		Jitter:         0.1,
	}
	for i := 0; i < 100; i++ {
		d := backoffFor(cfg, 3)
		base := 200 * time.Millisecond
		if d < base || d > base+base/10 {
			t.Fatalf("jittered backoff %v outside [%v, %v]", d, base, base+base/10)
		}
	}
}
