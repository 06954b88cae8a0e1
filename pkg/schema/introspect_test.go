package schema

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/google/go-cmp/cmp"
)

func TestIntrospect(t *testing.T) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	for _, stmt := range []string{
		"CREATE TABLE users (id INTEGER, name VARCHAR)",
		"CREATE TABLE orders (id INTEGER, amount DOUBLE)",
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			t.Fatal(err)
		}
	}

	sc, err := Introspect(ctx, db, "memory", "main")
	if err != nil {
		t.Fatalf("Introspect() error = %v", err)
	}
	if sc.Database != "memory" {
		t.Errorf("Database = %q, want %q", sc.Database, "memory")
	}
	want := []string{"orders", "users"}
	if diff := cmp.Diff(want, sc.TableNames()); diff != "" {
		t.Errorf("TableNames() mismatch (-want +got):\n%s", diff)
	}
	if !sc.HasColumn("users", "name") {
		t.Error("HasColumn(users, name) = false")
	}
}

func TestIntrospect_NoTables(t *testing.T) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := Introspect(context.Background(), db, "memory", "main"); err == nil {
		t.Error("Introspect() of an empty schema succeeded, want error")
	}
}

func TestIntrospectDSN_BadDSN(t *testing.T) {
	if _, err := IntrospectDSN(context.Background(), "not a dsn"); err == nil {
		t.Error("IntrospectDSN() with a malformed DSN succeeded, want error")
	}
}
