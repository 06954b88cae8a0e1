package dialect

import (
	"strings"

	"github.com/blastrain/vitess-sqlparser/sqlparser"
)

// FunctionRule rewrites one source-dialect function for the target dialect.
type FunctionRule struct {
	Name    string                                      // target function name for plain renames
	Handler func(fn *sqlparser.FuncExpr) sqlparser.Expr // custom rewrite for structural changes
}

// Transpiler rewrites a query from a source dialect's grammar to a target
// dialect's grammar at the syntax-tree level. Constructs the target grammar
// cannot express abort the whole translation.
type Transpiler struct {
	from  Dialect
	to    Dialect
	rules map[string]FunctionRule
	types map[string]string
}

// NewTranspiler creates a transpiler for the dialect pair. Only the
// sqlite→bigquery pair carries rewrite rules; other pairs pass the parsed
// tree through unchanged.
func NewTranspiler(from, to Dialect) *Transpiler {
	t := &Transpiler{
		from:  from,
		to:    to,
		rules: make(map[string]FunctionRule),
		types: make(map[string]string),
	}
	if from == SQLite && to == BigQuery {
		t.registerSQLiteToBigQuery()
	}
	return t
}

func (t *Transpiler) registerSQLiteToBigQuery() {
	// Plain renames.
	t.rules["RANDOM"] = FunctionRule{Name: "RAND"}
	t.rules["INSTR"] = FunctionRule{Name: "STRPOS"}
	t.rules["LOWER"] = FunctionRule{Name: "LOWER"}
	t.rules["SUBSTR"] = FunctionRule{Name: "SUBSTR"}
	t.rules["LAST_INSERT_ROWID"] = FunctionRule{Name: "LAST_INSERT_ID"}

	// TOTAL(x) → COALESCE(SUM(x), 0)
	t.rules["TOTAL"] = FunctionRule{
		Handler: func(fn *sqlparser.FuncExpr) sqlparser.Expr {
			if len(fn.Exprs) != 1 {
				return fn
			}
			return &sqlparser.FuncExpr{
				Name: sqlparser.NewColIdent("COALESCE"),
				Exprs: sqlparser.SelectExprs{
					&sqlparser.AliasedExpr{
						Expr: &sqlparser.FuncExpr{
							Name:  sqlparser.NewColIdent("SUM"),
							Exprs: sqlparser.SelectExprs{fn.Exprs[0]},
						},
					},
					&sqlparser.AliasedExpr{Expr: sqlparser.NewIntVal([]byte("0"))},
				},
			}
		},
	}

	// CAST type names.
	t.types["INTEGER"] = "INT64"
	t.types["INT"] = "INT64"
	t.types["REAL"] = "FLOAT64"
	t.types["DOUBLE"] = "FLOAT64"
	t.types["TEXT"] = "STRING"
	t.types["CHAR"] = "STRING"
	t.types["VARCHAR"] = "STRING"
	t.types["BLOB"] = "BYTES"
	t.types["NUMERIC"] = "NUMERIC"
}

// Transpile parses sql in the source grammar and renders it in the target
// grammar. Exactly one statement is accepted; anything else is a
// TranspileError, as is a source parse failure.
func (t *Transpiler) Transpile(sql string) (string, error) {
	stmts := SplitStatements(sql)
	if len(stmts) == 0 {
		return "", &TranspileError{From: t.from, To: t.to, Reason: "empty statement"}
	}
	if len(stmts) > 1 {
		return "", &TranspileError{From: t.from, To: t.to, Reason: "expected exactly one statement"}
	}

	stmt, err := sqlparser.Parse(stmts[0])
	if err != nil {
		return "", &TranspileError{From: t.from, To: t.to, Reason: "source parse failed", Err: err}
	}

	t.rewrite(stmt)
	return Render(stmt, t.to), nil
}

// rewrite applies function and cast-type rules in place.
func (t *Transpiler) rewrite(stmt sqlparser.Statement) {
	_ = sqlparser.Walk(func(node sqlparser.SQLNode) (bool, error) {
		switch n := node.(type) {
		case *sqlparser.FuncExpr:
			name := strings.ToUpper(n.Name.String())
			rule, ok := t.rules[name]
			if !ok {
				return true, nil
			}
			if rule.Handler != nil {
				if repl, ok := rule.Handler(n).(*sqlparser.FuncExpr); ok {
					*n = *repl
				}
				return true, nil
			}
			if rule.Name != "" && rule.Name != name {
				n.Name = sqlparser.NewColIdent(rule.Name)
			}
		case *sqlparser.ConvertExpr:
			if n.Type != nil {
				if mapped, ok := t.types[strings.ToUpper(n.Type.Type)]; ok {
					n.Type.Type = mapped
				}
			}
		}
		return true, nil
	}, stmt)
}

// applyRenderRewrites fixes constructs the AST walk cannot reach: the parser
// represents niladic datetime keywords as function calls, and GROUP_CONCAT
// has a dedicated node type that cannot be replaced in place.
func applyRenderRewrites(sql string) string {
	sql = strings.ReplaceAll(sql, "current_timestamp()", "CURRENT_TIMESTAMP")
	sql = strings.ReplaceAll(sql, "current_date()", "CURRENT_DATE")
	sql = strings.ReplaceAll(sql, "group_concat(", "STRING_AGG(")
	return sql
}
