package llm

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// generateWithRetry retries one generation request with exponential backoff
// and jitter, bounded by opts.MaxRetriesPerRequest and the batch context.
func generateWithRetry(ctx context.Context, g Generator, prompt string, opts BatchOptions) (string, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Second
	bo.Multiplier = 2

	policy := backoff.WithContext(
		backoff.WithMaxRetries(bo, uint64(opts.MaxRetriesPerRequest)), ctx)

	return backoff.RetryWithData(func() (string, error) {
		text, err := g.Generate(ctx, prompt, opts.Temperature)
		if err != nil {
			// Context errors are not retryable; everything else is.
			if ctx.Err() != nil {
				return "", backoff.Permanent(ctx.Err())
			}
			return "", err
		}
		return text, nil
	}, policy)
}
