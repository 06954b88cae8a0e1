package validate

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2" // duckdb driver for the dry-run checker

	"github.com/dbagentlabs/sqlbridge/pkg/connection"
	"github.com/dbagentlabs/sqlbridge/pkg/schema"
)

// ExecChecker dry-runs queries against an in-memory DuckDB instance
// materialized from a canonical schema. It catches semantic errors the
// AST-level pass cannot see (type mismatches in comparisons, aggregate
// misuse) without executing against real data.
type ExecChecker struct {
	conn *connection.Manager
}

// NewExecChecker opens an in-memory DuckDB instance.
func NewExecChecker() (*ExecChecker, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	return &ExecChecker{conn: connection.NewManager(db)}, nil
}

// Close releases the in-memory database.
func (c *ExecChecker) Close() error {
	return c.conn.Close()
}

// Materialize creates empty tables for every table in the schema. Catalog
// and database levels are flattened into the table name since the dry-run
// instance has a single namespace.
func (c *ExecChecker) Materialize(ctx context.Context, sc *schema.Schema) error {
	for _, table := range sc.TableNames() {
		cols := sc.Tables[table]
		defs := make([]string, 0, len(cols))
		for _, name := range sortedColumns(cols) {
			defs = append(defs, fmt.Sprintf("%q %s", name, duckDBType(cols[name])))
		}
		ddl := fmt.Sprintf("CREATE OR REPLACE TABLE %q (%s)", table, strings.Join(defs, ", "))
		if _, err := c.conn.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("materialize %s: %w", table, err)
		}
	}
	return nil
}

// Check prepares the query without executing it. A prepare failure is the
// dry-run verdict: the query would not run against the schema.
func (c *ExecChecker) Check(ctx context.Context, query string) error {
	stmt, err := c.conn.Prepare(ctx, query)
	if err != nil {
		return fmt.Errorf("dry run: %w", err)
	}
	return stmt.Close()
}

func sortedColumns(cols schema.Columns) []string {
	names := make([]string, 0, len(cols))
	for name := range cols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// duckDBType maps canonical type names onto types the dry-run instance
// accepts, defaulting to VARCHAR for anything unrecognized.
func duckDBType(declared string) string {
	switch strings.ToUpper(declared) {
	case "INT64", "INTEGER", "INT", "FIXED", "NUMBER":
		return "BIGINT"
	case "FLOAT", "FLOAT64", "REAL", "DOUBLE":
		return "DOUBLE"
	case "STRING", "TEXT", "VARCHAR":
		return "VARCHAR"
	case "BOOL", "BOOLEAN":
		return "BOOLEAN"
	case "DATE":
		return "DATE"
	case "DATETIME", "TIMESTAMP":
		return "TIMESTAMP"
	case "TIME":
		return "TIME"
	case "BYTES", "BLOB", "BINARY":
		return "BLOB"
	case "NUMERIC", "DECIMAL":
		return "DECIMAL(38,9)"
	}
	return "VARCHAR"
}
