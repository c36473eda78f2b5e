package webclient

import (
	"context"
	"net/http"
	"time"

	"github.com/EfeDurmaz16/assos/src/logging"
	"github.com/cenkalti/backoff/v5"
)

type AttemptFunc func() (status int, body []byte, err error)

type attemptResult struct {
	status int
	body   []byte
}

// DoWithRetry retries the attempt function on transient errors (429/5xx) or transport errors.
// Other 4xx responses are returned immediately.
func DoWithRetry(ctx context.Context, attempts int, initialDelay time.Duration, fn AttemptFunc) (int, []byte, error) {
	if attempts <= 0 {
		attempts = 1
	}
	if initialDelay <= 0 {
		initialDelay = 2 * time.Second
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = initialDelay
	policy.Multiplier = 2
	policy.MaxInterval = 30 * time.Second

	res, err := backoff.Retry(ctx, func() (attemptResult, error) {
		status, body, err := fn()
		out := attemptResult{status: status, body: body}
		switch {
		case err == nil && status != http.StatusTooManyRequests && status < 500:
			return out, nil
		case status >= 400 && status < 500 && status != http.StatusTooManyRequests:
			return out, backoff.Permanent(statusErr(status, body, err))
		case status >= 400:
			return out, statusErr(status, body, nil)
		default:
			return out, err
		}
	},
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(attempts)),
		backoff.WithMaxElapsedTime(0),
	)
	return res.status, res.body, err
}

func statusErr(status int, body []byte, cause error) error {
	if cause != nil && status == 0 {
		return cause
	}
	return &logging.StatusError{Status: status, Body: truncate(body, 512)}
}

func truncate(b []byte, limit int) string {
	if len(b) <= limit {
		return string(b)
	}
	return string(b[:limit]) + "... (truncated)"
}
