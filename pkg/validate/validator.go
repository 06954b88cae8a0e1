// Package validate checks candidate queries against a dialect grammar and a
// canonical schema. It is the correctness gate the correction loop and
// transpiler depend on.
package validate

import (
	"errors"

	"github.com/dbagentlabs/sqlbridge/pkg/dialect"
	"github.com/dbagentlabs/sqlbridge/pkg/schema"
)

// Outcome is the result of one validation pass. On success Err is nil and
// Rewritten holds the canonicalized rendering of the query; on failure Err
// carries the typed parse/optimize error and Rewritten is the original query
// unchanged. The validator never returns a partially rewritten query on
// failure.
type Outcome struct {
	Err       error
	Rewritten string
}

// Valid reports whether the query passed validation.
func (o Outcome) Valid() bool { return o.Err == nil }

// Message returns the error text, or "" when valid.
func (o Outcome) Message() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// Category names the error class for callers that need more than the
// stringified message.
func (o Outcome) Category() string {
	var (
		pe *dialect.ParseError
		oe *dialect.OptimizeError
		te *dialect.TranspileError
	)
	switch {
	case o.Err == nil:
		return ""
	case errors.As(o.Err, &pe):
		return "parse"
	case errors.As(o.Err, &oe):
		return "optimize"
	case errors.As(o.Err, &te):
		return "transpile"
	}
	return "internal"
}

// Validator validates queries under one dialect against one canonical
// schema. Catalog and database, when set, are injected onto unqualified
// table references before the semantic pass.
type Validator struct {
	Dialect  dialect.Dialect
	Schema   *schema.Schema
	Catalog  string
	Database string
}

// Validate parses the query under strict error reporting, qualifies table
// references, runs the schema-aware semantic pass, and renders the result.
func (v *Validator) Validate(query string) Outcome {
	stmt, err := dialect.Parse(query, v.Dialect)
	if err != nil {
		return Outcome{Err: err, Rewritten: query}
	}

	dialect.QualifyTables(stmt, v.Catalog, v.Database)

	if err := dialect.Optimize(stmt, v.Dialect, v.Schema); err != nil {
		return Outcome{Err: err, Rewritten: query}
	}

	return Outcome{Rewritten: dialect.Render(stmt, v.Dialect)}
}
