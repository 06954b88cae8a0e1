package dialect

import (
	"strings"

	"github.com/blastrain/vitess-sqlparser/sqlparser"
)

// QualifyTables injects the catalog and database identifiers onto every table
// reference that lacks a qualifier. The vitess AST carries a single qualifier
// slot per table, so catalog and database compose into one dotted identifier.
func QualifyTables(stmt sqlparser.Statement, catalog, db string) {
	qualifier := composeQualifier(catalog, db)
	if qualifier == "" {
		return
	}
	_ = sqlparser.Walk(func(node sqlparser.SQLNode) (bool, error) {
		ate, ok := node.(*sqlparser.AliasedTableExpr)
		if !ok {
			return true, nil
		}
		tn, ok := ate.Expr.(sqlparser.TableName)
		if !ok {
			return true, nil
		}
		if tn.Qualifier.String() == "" {
			tn.Qualifier = sqlparser.NewTableIdent(qualifier)
			ate.Expr = tn
		}
		return true, nil
	}, stmt)
}

func composeQualifier(catalog, db string) string {
	parts := make([]string, 0, 2)
	if catalog != "" {
		parts = append(parts, catalog)
	}
	if db != "" {
		parts = append(parts, db)
	}
	return strings.Join(parts, ".")
}
