package edit

import (
	"context"
	"errors"
	"time"

	"promptglot/internal/domain"
	"promptglot/internal/metrics"
)

// DefaultProviderTimeout bounds a single provider call when none is configured.
const DefaultProviderTimeout = 60 * time.Second

// callProvider runs fn once under its own deadline. There are no retries. A
// deadline or transport timeout comes back as a PROVIDER_TIMEOUT error.
func callProvider[T any](ctx context.Context, timeout time.Duration, provider, operation string, fn func(context.Context) (T, error)) (T, error) {
	if timeout <= 0 {
		timeout = DefaultProviderTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	out, err := fn(callCtx)
	outcome := "success"
	if err != nil {
		var de *domain.Error
		if !errors.As(err, &de) || de.Kind != domain.KindTimeout {
			if domain.IsTimeout(err) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
				err = domain.Timeout(provider, err)
			}
		}
		outcome = domain.AsError(err).Code
	}
	metrics.RecordProviderCall(provider, operation, outcome, time.Since(start))
	return out, err
}
