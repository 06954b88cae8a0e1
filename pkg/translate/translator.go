package translate

import (
	"context"
	"strings"

	"github.com/dbagentlabs/sqlbridge/pkg/correction"
	"github.com/dbagentlabs/sqlbridge/pkg/dialect"
	"github.com/dbagentlabs/sqlbridge/pkg/schema"
	"github.com/dbagentlabs/sqlbridge/pkg/validate"
)

// Request is one unit of translation work. It is immutable for the duration
// of the call; nothing in the pipeline mutates the schema or dialect inputs.
type Request struct {
	Query    string
	Schema   *schema.Schema
	Catalog  string
	Database string
}

// Translator converts queries from a source dialect to the target dialect,
// optionally repairing validation failures through the correction loop.
// Construct one per configuration and share it; it holds no per-call state.
type Translator struct {
	Source dialect.Dialect
	Target dialect.Dialect

	// Loop repairs validation failures. Nil disables repair: validation
	// failures then flow to the transpiler unchanged.
	Loop *correction.Loop

	// ProcessInputErrors runs validate-and-repair on the incoming query
	// before transpilation.
	ProcessInputErrors bool
	// ProcessOutputErrors runs the same pass on the transpiled query.
	ProcessOutputErrors bool
}

// New creates a Translator with the default sqlite→bigquery dialect pair.
func New(loop *correction.Loop) *Translator {
	return &Translator{
		Source:             dialect.SQLite,
		Target:             dialect.BigQuery,
		Loop:               loop,
		ProcessInputErrors: true,
	}
}

// Translate runs the pipeline. Recognized non-query statements and transpile
// failures are fatal. Repair failures are not: an unfixable query flows
// through as-is and surfaces as a transpile error or as an invalid result the
// caller detects downstream.
func (t *Translator) Translate(ctx context.Context, req Request) (string, error) {
	q := req.Query
	switch kind := dialect.Classify(q); kind {
	case dialect.KindDML, dialect.KindDDL, dialect.KindTransaction:
		return "", &dialect.ClassifyError{Kind: kind}
	}
	if t.ProcessInputErrors {
		q = t.fixErrors(ctx, t.Source, q, req)
	}

	out, err := dialect.NewTranspiler(t.Source, t.Target).Transpile(q)
	if err != nil {
		return "", err
	}

	if t.ProcessOutputErrors {
		out = t.fixErrors(ctx, t.Target, out, req)
	}

	out = strings.TrimSpace(out)
	out = BacktickIdentifiers(out)
	out = FixQuotes(out)
	return out, nil
}

// Validate exposes the target-dialect validation pass for a request without
// translating.
func (t *Translator) Validate(req Request) validate.Outcome {
	return t.validator(t.Target, req).Validate(FixQuotes(req.Query))
}

// fixErrors applies quote heuristics, validates the query against the given
// dialect, and on failure hands it to the correction loop. The loop's output
// is best-effort; it is not re-validated here unless the loop is configured
// to do so.
func (t *Translator) fixErrors(ctx context.Context, d dialect.Dialect, q string, req Request) string {
	q = FixQuotes(q)

	v := t.validator(d, req)
	outcome := v.Validate(q)
	if outcome.Valid() {
		return outcome.Rewritten
	}
	if t.Loop == nil {
		return q
	}
	return t.Loop.Repair(ctx, v, q, outcome.Message())
}

func (t *Translator) validator(d dialect.Dialect, req Request) *validate.Validator {
	return &validate.Validator{
		Dialect:  d,
		Schema:   req.Schema,
		Catalog:  req.Catalog,
		Database: req.Database,
	}
}
