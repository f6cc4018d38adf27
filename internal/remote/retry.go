package remote

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Policy configures bounded retries with exponential backoff. The delay
// before attempt N is BaseDelay * 2^(N-2), so with the defaults the delays
// are 500ms before attempt 2 and 1000ms before attempt 3.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// BaseDelay is the backoff delay before the second attempt.
	BaseDelay time.Duration
	// Logger receives a warning per retried attempt when set.
	Logger *slog.Logger
	// Sleep overrides the backoff sleep, used by tests to observe delays.
	// When nil a timer honoring ctx cancellation is used.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultPolicy returns the retry parameters shared by all call sites:
// 3 attempts, 500ms base delay, doubling per attempt.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   500 * time.Millisecond,
	}
}

// delay returns the backoff applied after the given (1-based) attempt.
func (p Policy) delay(attempt int) time.Duration {
	return p.BaseDelay << (attempt - 1)
}

// sleep blocks for d or until ctx is cancelled.
func (p Policy) sleep(ctx context.Context, d time.Duration) error {
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// IsTransient reports whether err is worth retrying. Only *CallError values
// classified as timeout, connection failure, or 5xx qualify; any other error
// is treated as permanent.
func IsTransient(err error) bool {
	var callErr *CallError
	if !errors.As(err, &callErr) {
		return false
	}
	return callErr.Transient()
}

// Do invokes op up to p.MaxAttempts times, sleeping between attempts on
// transient failures. Permanent failures stop immediately; on exhaustion the
// last error is returned. Callers receiving a *CallError should still inspect
// its body for a structured application-level result before treating the call
// as fully failed.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !IsTransient(err) {
			return zero, err
		}

		if attempt == p.MaxAttempts {
			break
		}

		backoff := p.delay(attempt)
		if p.Logger != nil {
			p.Logger.Warn("transient failure, retrying",
				slog.Int("attempt", attempt),
				slog.Int("max_attempts", p.MaxAttempts),
				slog.Duration("backoff", backoff),
				slog.Any("error", err),
			)
		}

		if err := p.sleep(ctx, backoff); err != nil {
			return zero, err
		}
	}

	return zero, lastErr
}
