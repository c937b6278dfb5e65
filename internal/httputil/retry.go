// Package httputil holds the retry helper used by the GitHub client.
//
// Requests stay sequential: Retry never starts an attempt before the
// previous one has returned, and it waits between attempts with a delay
// that doubles each time. Only failures wrapped in RetryableError are
// retried; the client wraps transport errors and the statuses accepted by
// RetryableStatus.
package httputil

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// Defaults for a client built without WithRetry: three attempts, waiting
// 1s and then 2s.
const (
	DefaultAttempts = 3
	DefaultDelay    = time.Second
)

// RetryableError marks a failure as transient, such as a dropped connection
// or a 502 from the API. Only errors wrapped in it are retried by Retry, and
// errors.Is/As see through it to Err.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry runs fn up to attempts times, doubling delay after each retryable
// failure. Non-retryable errors are returned at once, and ctx cancellation
// stops the wait between attempts. When every attempt fails it returns the
// last error, still wrapped, so callers can unwrap the final status.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

// IsRetryable reports whether err, or anything it wraps, is a RetryableError.
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// RetryableStatus reports whether a response status is worth another try:
// 429 and any 5xx. A 403 rate-limit response is final, since its reset
// window is far longer than the backoff.
func RetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
