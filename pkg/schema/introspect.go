package schema

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/snowflakedb/gosnowflake"
)

// OpenWarehouse opens a connection to a Snowflake warehouse for schema
// introspection. The DSN follows the gosnowflake format
// (user:pass@account/database/schema).
func OpenWarehouse(dsn string) (*sql.DB, error) {
	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return nil, fmt.Errorf("open warehouse: %w", err)
	}
	return db, nil
}

// IntrospectDSN opens the warehouse the DSN addresses and loads the schema
// for the database and schema the DSN names. The connection is closed before
// returning.
func IntrospectDSN(ctx context.Context, dsn string) (*Schema, error) {
	cfg, err := gosnowflake.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse warehouse dsn: %w", err)
	}
	if cfg.Database == "" || cfg.Schema == "" {
		return nil, fmt.Errorf("warehouse dsn must name a database and schema")
	}
	db, err := OpenWarehouse(dsn)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()
	return Introspect(ctx, db, cfg.Database, cfg.Schema)
}

// Introspect loads the canonical schema for one database/schema pair from a
// live warehouse by querying information_schema.columns. The catalog level is
// left empty; callers that address tables as project.dataset.table set
// Schema.Catalog themselves.
func Introspect(ctx context.Context, db *sql.DB, database, schemaName string) (*Schema, error) {
	const q = `
		SELECT table_name, column_name, data_type
		FROM information_schema.columns
		WHERE table_catalog = ? AND table_schema = ?
		ORDER BY table_name, ordinal_position`

	rows, err := db.QueryContext(ctx, q, database, schemaName)
	if err != nil {
		return nil, fmt.Errorf("introspect %s.%s: %w", database, schemaName, err)
	}
	defer func() { _ = rows.Close() }()

	sc := &Schema{Database: database, Tables: make(map[string]Columns)}
	for rows.Next() {
		var table, column, dataType string
		if err := rows.Scan(&table, &column, &dataType); err != nil {
			return nil, fmt.Errorf("introspect scan: %w", err)
		}
		if sc.Tables[table] == nil {
			sc.Tables[table] = make(Columns)
		}
		sc.Tables[table][column] = dataType
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("introspect rows: %w", err)
	}
	if len(sc.Tables) == 0 {
		return nil, fmt.Errorf("introspect %s.%s: no tables found", database, schemaName)
	}
	return sc, nil
}
