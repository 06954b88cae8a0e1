// Package connection serializes access to the dry-run database instance.
package connection

import (
	"context"
	"database/sql"
	"sync"
)

// Manager guards the shared in-memory database behind the dry-run checker.
//
//   - Prepare operations can be concurrent (reads)
//   - Exec operations are serialized using a mutex (schema writes)
type Manager struct {
	db      *sql.DB
	writeMu sync.Mutex
}

// NewManager creates a manager for the given database.
func NewManager(db *sql.DB) *Manager {
	return &Manager{db: db}
}

// Prepare compiles a statement without executing it. Multiple goroutines can
// call Prepare simultaneously.
func (m *Manager) Prepare(ctx context.Context, query string) (*sql.Stmt, error) {
	return m.db.PrepareContext(ctx, query)
}

// Exec executes a write operation. Writes are serialized so concurrent
// schema materializations cannot interleave.
func (m *Manager) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	return m.db.ExecContext(ctx, query, args...)
}

// Close releases the underlying database.
func (m *Manager) Close() error {
	return m.db.Close()
}
