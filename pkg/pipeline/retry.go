package pipeline

import (
	"errors"
	"time"
)

// Retry attempts op, retrying after each failure with the next delay
// from delays until op succeeds or the delays are exhausted. The
// delays are consumed left to right, one per failed attempt; an empty
// list means exactly one attempt. On exhaustion the last attempt's
// error is returned as-is.
//
// This is the engine's only backoff primitive; it is meant for steps
// that poll eventually-consistent external systems.
func Retry[T any](ctx *Context, delays []time.Duration, op func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 1; ; attempt++ {
		result, err := op()
		if err == nil {
			if attempt > 1 {
				ctx.Logger.Info("operation succeeded after retries", "attempts", attempt)
			}
			return result, nil
		}
		lastErr = err

		if len(delays) == 0 {
			break
		}
		delay := delays[0]
		delays = delays[1:]

		ctx.Logger.Debug("operation failed, retrying", "attempt", attempt, "delay", delay, "error", err)
		time.Sleep(delay)
	}

	if lastErr == nil {
		lastErr = errors.New("retries exhausted")
	}
	return zero, lastErr
}
