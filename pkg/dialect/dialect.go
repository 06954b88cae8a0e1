// Package dialect wraps the vitess-sqlparser AST with dialect-aware parsing,
// schema-driven semantic checks, and dialect-to-dialect transpilation.
package dialect

import "fmt"

// Dialect identifies a SQL grammar/semantics variant.
type Dialect string

// Supported dialects.
const (
	SQLite   Dialect = "sqlite"
	BigQuery Dialect = "bigquery"
	MySQL    Dialect = "mysql"
)

// ParseError indicates a query failed to parse under the declared dialect.
type ParseError struct {
	Dialect Dialect
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse (%s): %v", e.Dialect, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// OptimizeError indicates a query parsed but failed schema-aware semantic
// checks (unknown table, unknown or ambiguous column).
type OptimizeError struct {
	Dialect Dialect
	Reason  string
}

func (e *OptimizeError) Error() string {
	return fmt.Sprintf("optimize (%s): %s", e.Dialect, e.Reason)
}

// TranspileError indicates the query could not be rewritten into the target
// dialect. Transpile failures are fatal to the translation call.
type TranspileError struct {
	From   Dialect
	To     Dialect
	Reason string
	Err    error
}

func (e *TranspileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transpile (%s -> %s): %s: %v", e.From, e.To, e.Reason, e.Err)
	}
	return fmt.Sprintf("transpile (%s -> %s): %s", e.From, e.To, e.Reason)
}

func (e *TranspileError) Unwrap() error { return e.Err }
