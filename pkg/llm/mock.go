package llm

import (
	"context"
	"sync"
	"time"
)

// ScriptedGenerator is a test double that replays canned responses in call
// order. The last response repeats once the script is exhausted.
type ScriptedGenerator struct {
	mu        sync.Mutex
	responses []string
	errs      map[int]error
	delay     time.Duration
	calls     []string
	next      int
}

// ScriptedOption configures a ScriptedGenerator.
type ScriptedOption func(*ScriptedGenerator)

// WithCallDelay makes every call sleep before responding.
func WithCallDelay(d time.Duration) ScriptedOption {
	return func(g *ScriptedGenerator) { g.delay = d }
}

// WithCallError makes the i-th call (0-indexed) fail.
func WithCallError(i int, err error) ScriptedOption {
	return func(g *ScriptedGenerator) { g.errs[i] = err }
}

// NewScriptedGenerator creates a generator replaying the given responses.
func NewScriptedGenerator(responses []string, opts ...ScriptedOption) *ScriptedGenerator {
	g := &ScriptedGenerator{
		responses: responses,
		errs:      make(map[int]error),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate implements Generator.
func (g *ScriptedGenerator) Generate(ctx context.Context, prompt string, _ float32) (string, error) {
	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	call := g.next
	g.next++
	g.calls = append(g.calls, prompt)

	if err, ok := g.errs[call]; ok {
		return "", err
	}
	if len(g.responses) == 0 {
		return "", nil
	}
	if call >= len(g.responses) {
		return g.responses[len(g.responses)-1], nil
	}
	return g.responses[call], nil
}

// Calls returns the prompts received so far.
func (g *ScriptedGenerator) Calls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.calls))
	copy(out, g.calls)
	return out
}

// ScriptedBatch is a BatchGenerator test double returning a fixed response
// slice regardless of prompts, pinning per-candidate slots by index.
type ScriptedBatch struct {
	Responses []string
}

// Generate implements Generator for single calls.
func (b *ScriptedBatch) Generate(context.Context, string, float32) (string, error) {
	if len(b.Responses) == 0 {
		return "", nil
	}
	return b.Responses[0], nil
}

// GenerateMany implements BatchGenerator.
func (b *ScriptedBatch) GenerateMany(_ context.Context, prompts []string, _ BatchOptions) []string {
	out := make([]string, len(prompts))
	for i := range out {
		if i < len(b.Responses) {
			out[i] = b.Responses[i]
		} else {
			out[i] = PlaceholderError
		}
	}
	return out
}
