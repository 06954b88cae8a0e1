package connection

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"

	_ "github.com/duckdb/duckdb-go/v2"
)

// setupTestDuckDB creates an in-memory DuckDB database for testing.
func setupTestDuckDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("duckdb", "")
	if err != nil {
		t.Fatalf("failed to open DuckDB: %v", err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close DB: %v", err)
		}
	})

	return db
}

// TestManager_Prepare_Concurrent tests concurrent statement preparation.
func TestManager_Prepare_Concurrent(t *testing.T) {
	db := setupTestDuckDB(t)
	mgr := NewManager(db)

	if _, err := mgr.Exec(context.Background(), "CREATE TABLE test_table (id INTEGER, value INTEGER)"); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}

	const goroutines = 10
	var wg sync.WaitGroup
	errs := make(chan error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			stmt, err := mgr.Prepare(context.Background(), "SELECT value FROM test_table WHERE id = ?")
			if err != nil {
				errs <- fmt.Errorf("goroutine %d: prepare failed: %w", id, err)
				return
			}
			errs <- stmt.Close()
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Error(err)
		}
	}
}

// TestManager_Exec_Serialized tests that concurrent writes do not conflict.
func TestManager_Exec_Serialized(t *testing.T) {
	db := setupTestDuckDB(t)
	mgr := NewManager(db)

	if _, err := mgr.Exec(context.Background(), "CREATE TABLE counter (n INTEGER)"); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}

	const goroutines = 10
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if _, err := mgr.Exec(context.Background(), "INSERT INTO counter VALUES (?)", n); err != nil {
				t.Errorf("insert %d failed: %v", n, err)
			}
		}(i)
	}
	wg.Wait()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM counter").Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != goroutines {
		t.Errorf("count = %d, want %d", count, goroutines)
	}
}

// TestManager_PrepareReportsSyntaxError tests that a bad statement fails at
// prepare time.
func TestManager_PrepareReportsSyntaxError(t *testing.T) {
	db := setupTestDuckDB(t)
	mgr := NewManager(db)

	if _, err := mgr.Prepare(context.Background(), "SELEC 1"); err == nil {
		t.Error("Prepare() accepted a syntax error")
	}
}
