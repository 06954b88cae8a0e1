// Package llm abstracts the text-generation collaborator behind a small
// interface and provides the ordered parallel batch used by the correction
// loop.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// Generator produces text for a prompt. Implementations own their transport
// and credentials; callers own retry and batching policy.
type Generator interface {
	Generate(ctx context.Context, prompt string, temperature float32) (string, error)
}

// BatchGenerator is optionally implemented by generators that handle the
// whole batch themselves (used by scripted test doubles that need to pin
// per-candidate responses).
type BatchGenerator interface {
	GenerateMany(ctx context.Context, prompts []string, opts BatchOptions) []string
}

// Result placeholders substituted into a batch slot instead of aborting the
// batch. Neither contains a fenced SQL block, so downstream extraction treats
// the slot as a null candidate.
const (
	PlaceholderTimeout = "Timeout"
	PlaceholderError   = "Unhandled Error"
)

// BatchOptions controls one GenerateMany call.
type BatchOptions struct {
	// Timeout is the wall-clock budget for the whole batch. Requests still
	// outstanding when it elapses get PlaceholderTimeout.
	Timeout time.Duration
	// MaxRetriesPerRequest bounds retries for each request independently,
	// inside the batch timeout window.
	MaxRetriesPerRequest int
	Temperature          float32
}

// DefaultBatchOptions mirrors the collaborator contract defaults.
func DefaultBatchOptions() BatchOptions {
	return BatchOptions{
		Timeout:              60 * time.Second,
		MaxRetriesPerRequest: 5,
		Temperature:          0.5,
	}
}

// GenerateMany dispatches one worker per prompt and collects every result
// before returning. Results are ordered by submission index, never by
// completion order. A slot holds the generated text, PlaceholderTimeout, or
// a PlaceholderError message; per-request failures never abort the batch.
func GenerateMany(ctx context.Context, g Generator, prompts []string, opts BatchOptions) []string {
	if len(prompts) == 0 {
		return nil
	}
	if bg, ok := g.(BatchGenerator); ok {
		return bg.GenerateMany(ctx, prompts, opts)
	}

	batchCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		batchCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	results := make([]string, len(prompts))
	eg := &errgroup.Group{}
	eg.SetLimit(len(prompts))
	for i, prompt := range prompts {
		eg.Go(func() error {
			text, err := generateWithRetry(batchCtx, g, prompt, opts)
			switch {
			case err == nil:
				results[i] = text
			case errors.Is(err, context.DeadlineExceeded):
				results[i] = PlaceholderTimeout
			default:
				results[i] = fmt.Sprintf("%s: %v", PlaceholderError, err)
			}
			return nil
		})
	}
	_ = eg.Wait()
	return results
}
