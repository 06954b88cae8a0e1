package dialect

import (
	"fmt"
	"strings"
)

// StatementKind is the coarse category of a SQL statement.
type StatementKind int

// Statement kinds.
const (
	KindQuery       StatementKind = iota // SELECT, WITH, SHOW, DESCRIBE
	KindDML                              // INSERT, UPDATE, DELETE, REPLACE
	KindDDL                              // CREATE, DROP, ALTER, TRUNCATE
	KindTransaction                      // BEGIN, COMMIT, ROLLBACK
	KindOther
)

func (k StatementKind) String() string {
	switch k {
	case KindQuery:
		return "query"
	case KindDML:
		return "dml"
	case KindDDL:
		return "ddl"
	case KindTransaction:
		return "transaction"
	}
	return "other"
}

// ClassifyError indicates the input is a recognized non-query statement.
// Translation accepts queries only; DML, DDL, and transaction control are
// rejected before parsing.
type ClassifyError struct {
	Kind StatementKind
}

func (e *ClassifyError) Error() string {
	return fmt.Sprintf("classify: %s statement not supported", e.Kind)
}

// Classify categorizes a SQL statement by its leading keyword. The
// translation core only accepts query statements; callers use this to reject
// DML/DDL input before parsing.
func Classify(sql string) StatementKind {
	upper := strings.ToUpper(strings.TrimSpace(sql))
	switch {
	case hasAnyPrefix(upper, "SELECT", "WITH", "SHOW", "DESCRIBE", "DESC ", "EXPLAIN"):
		return KindQuery
	case hasAnyPrefix(upper, "INSERT", "UPDATE", "DELETE", "REPLACE", "MERGE"):
		return KindDML
	case hasAnyPrefix(upper, "CREATE", "DROP", "ALTER", "TRUNCATE"):
		return KindDDL
	case hasAnyPrefix(upper, "BEGIN", "COMMIT", "ROLLBACK", "START TRANSACTION"):
		return KindTransaction
	}
	return KindOther
}

// IsQuery reports whether the statement is a read-only query.
func IsQuery(sql string) bool {
	return Classify(sql) == KindQuery
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
