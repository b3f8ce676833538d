package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type rateLimitError struct {
	provider string
}

func (e *rateLimitError) Error() string {
	return fmt.Sprintf("%s: rate limited", e.provider)
}

type authError struct {
	provider string
	message  string
}

func (e *authError) Error() string {
	return fmt.Sprintf("%s: authentication error: %s", e.provider, e.message)
}

type serverError struct {
	provider string
	status   int
	body     string
}

func (e *serverError) Error() string {
	return fmt.Sprintf("%s: server error %d: %s", e.provider, e.status, e.body)
}

// IsAuthError reports whether err is an authentication failure from a
// provider. Callers use it to pick the right exit code.
func IsAuthError(err error) bool {
	var ae *authError
	return errors.As(err, &ae)
}

func retryWithBackoff(ctx context.Context, maxRetries int, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		// Only rate limit errors are retried. Auth and server errors
		// fail the same way on a retry.
		var rle *rateLimitError
		if !errors.As(lastErr, &rle) {
			return lastErr
		}

		if attempt < maxRetries {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
	}
	return lastErr
}
