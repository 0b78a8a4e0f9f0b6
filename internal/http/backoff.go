package http

import (
	"math/rand"
	"time"

	"github.com/fivetwenty-io/pexels-client/internal/constants"
)

// Backoff returns the delay before retry number attempt (0-based). The delay
// grows exponentially from constants.BackoffBase with a uniform random jitter
// of up to half the exponential term, and is clamped to
// constants.BackoffCeiling so a single sleep is always bounded no matter how
// large the attempt counter grows.
func Backoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	// Saturating doubling: stop as soon as the ceiling is reached rather
	// than risking integer overflow on large attempt counts.
	exp := constants.BackoffBase
	for i := 0; i < attempt && exp < constants.BackoffCeiling; i++ {
		exp *= 2
	}

	if exp > constants.BackoffCeiling {
		exp = constants.BackoffCeiling
	}

	delay := exp
	if half := exp / 2; half > 0 {
		delay += time.Duration(rand.Int63n(int64(half) + 1))
	}

	if delay > constants.BackoffCeiling {
		delay = constants.BackoffCeiling
	}

	return delay
}
