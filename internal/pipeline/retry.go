package pipeline

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/dgallion1/llmsplit/internal/embed"
)

const (
	// MaxRetries bounds attempts per embedding batch.
	MaxRetries = 3

	backoffBase = 1 * time.Second
	backoffCap  = 30 * time.Second
)

// IsRetryable reports whether err is a transient embedding backend
// failure (rate limit or server error) anywhere in its chain.
func IsRetryable(err error) bool {
	var retryErr *embed.RetryableError
	return errors.As(err, &retryErr)
}

// Backoff returns the wait before retry attempt n (0-indexed):
// exponential growth capped at backoffCap, plus up to 50% jitter.
func Backoff(attempt int) time.Duration {
	wait := min(backoffBase<<uint(attempt), backoffCap)
	return wait + rand.N(wait/2)
}
