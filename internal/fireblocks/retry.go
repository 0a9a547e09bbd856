package fireblocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/relaedzc/simple-fireblocks-service/internal/config"
)

// backoffFor returns the delay before the given retry attempt (attempt 2 is
// the first retry). The base delay grows exponentially up to the cap;
// jitter is additive-only so delays stay monotonically non-decreasing
// across attempts.
func backoffFor(cfg config.RetryConfig, attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	base := float64(cfg.InitialBackoff) * math.Pow(cfg.Multiplier, float64(attempt-2))
	if max := float64(cfg.MaxBackoff); base > max {
		base = max
	}
	if cfg.Jitter > 0 {
		base += base * cfg.Jitter * rand.Float64()
	}
	return time.Duration(base)
}
