package correction

import (
	"context"

	"github.com/dbagentlabs/sqlbridge/pkg/llm"
	"github.com/dbagentlabs/sqlbridge/pkg/validate"
)

// Loop is the bounded single-pass repair loop. It generates N correction
// candidates in parallel with a shared prompt and keeps the first candidate,
// in submission order, that contains a fenced SQL block.
type Loop struct {
	Generator llm.Generator
	// Candidates is the number of parallel correction requests. Zero means 1.
	Candidates int
	Batch      llm.BatchOptions
	// Revalidate re-runs the validator on the chosen candidate and falls
	// back to the original query when the candidate still fails. Off by
	// default: the single-pass repair trades completeness for predictable
	// latency, and callers re-validate downstream anyway.
	Revalidate bool
}

// Repair asks the collaborator to fix the failing query. When every
// candidate lacks a fenced SQL block (or generation failed outright), the
// original query is returned unchanged; callers cannot distinguish "fixed"
// from "unfixable" without re-validating.
func (l *Loop) Repair(ctx context.Context, v *validate.Validator, query, errText string) string {
	n := l.Candidates
	if n < 1 {
		n = 1
	}

	prompt := BuildPrompt(v.Dialect, query, errText, v.Schema)
	prompts := make([]string, n)
	for i := range prompts {
		prompts[i] = prompt
	}

	responses := llm.GenerateMany(ctx, l.Generator, prompts, l.Batch)

	// All results are collected before selection; the first parseable
	// candidate by submission index wins regardless of completion order.
	for _, response := range responses {
		block, ok := ExtractSQL(response)
		if !ok {
			continue
		}
		if l.Revalidate && !v.Validate(block).Valid() {
			return query
		}
		return block
	}
	return query
}
