package dialect

import (
	"fmt"
	"sort"
	"strings"

	"github.com/blastrain/vitess-sqlparser/sqlparser"

	"github.com/dbagentlabs/sqlbridge/pkg/schema"
)

// tableBinding associates a FROM-clause alias with the schema table it
// refers to.
type tableBinding struct {
	alias string // alias or bare table name, lowercased
	table string // table name as written in the query
}

// Optimize runs the schema-aware semantic pass: every referenced table must
// exist in the schema, every column must resolve to exactly one bound table,
// and unqualified columns are rewritten with the resolving table's qualifier.
// A nil schema disables the pass. Identifier matching is case-insensitive.
func Optimize(stmt sqlparser.Statement, d Dialect, sc *schema.Schema) error {
	if sc == nil {
		return nil
	}

	bindings, err := collectBindings(stmt, d, sc)
	if err != nil {
		return err
	}

	return resolveColumns(stmt, d, sc, bindings)
}

// collectBindings gathers every aliased table reference in the statement and
// checks it against the schema.
func collectBindings(stmt sqlparser.Statement, d Dialect, sc *schema.Schema) ([]tableBinding, error) {
	var (
		bindings []tableBinding
		walkErr  error
	)
	_ = sqlparser.Walk(func(node sqlparser.SQLNode) (bool, error) {
		ate, ok := node.(*sqlparser.AliasedTableExpr)
		if !ok {
			return true, nil
		}
		tn, ok := ate.Expr.(sqlparser.TableName)
		if !ok {
			// Derived tables bind their inner scope; columns from them are
			// not resolvable against the base schema, so skip.
			return true, nil
		}
		name := tn.Name.String()
		if _, ok := sc.Lookup(name); !ok {
			walkErr = &OptimizeError{Dialect: d, Reason: fmt.Sprintf("unknown table: %s", name)}
			return false, walkErr
		}
		alias := ate.As.String()
		if alias == "" {
			alias = name
		}
		bindings = append(bindings, tableBinding{alias: strings.ToLower(alias), table: name})
		return true, nil
	}, stmt)
	if walkErr != nil {
		return nil, walkErr
	}
	return bindings, nil
}

// resolveColumns checks every column reference against the bound tables and
// propagates qualifiers onto unqualified columns that resolve unambiguously.
func resolveColumns(stmt sqlparser.Statement, d Dialect, sc *schema.Schema, bindings []tableBinding) error {
	byAlias := make(map[string]tableBinding, len(bindings))
	for _, b := range bindings {
		byAlias[b.alias] = b
	}

	var walkErr error
	_ = sqlparser.Walk(func(node sqlparser.SQLNode) (bool, error) {
		cn, ok := node.(*sqlparser.ColName)
		if !ok {
			return true, nil
		}
		col := cn.Name.String()

		if qual := cn.Qualifier.Name.String(); qual != "" {
			b, ok := byAlias[strings.ToLower(qual)]
			if !ok {
				walkErr = &OptimizeError{Dialect: d, Reason: fmt.Sprintf("unknown table or alias: %s", qual)}
				return false, walkErr
			}
			if !sc.HasColumn(b.table, col) {
				walkErr = &OptimizeError{Dialect: d, Reason: fmt.Sprintf("unknown column: %s.%s", qual, col)}
				return false, walkErr
			}
			return true, nil
		}

		var owners []tableBinding
		seen := map[string]bool{}
		for _, b := range bindings {
			if sc.HasColumn(b.table, col) && !seen[b.alias] {
				owners = append(owners, b)
				seen[b.alias] = true
			}
		}
		switch len(owners) {
		case 0:
			reason := fmt.Sprintf("unknown column: %s", col)
			if declared := sc.TablesWithColumn(col); len(declared) > 0 {
				reason = fmt.Sprintf("unknown column: %s (declared by %s, not referenced)",
					col, strings.Join(declared, ", "))
			}
			walkErr = &OptimizeError{Dialect: d, Reason: reason}
			return false, walkErr
		case 1:
			cn.Qualifier = sqlparser.TableName{Name: sqlparser.NewTableIdent(owners[0].alias)}
			return true, nil
		default:
			aliases := make([]string, len(owners))
			for i, b := range owners {
				aliases[i] = b.alias
			}
			sort.Strings(aliases)
			walkErr = &OptimizeError{Dialect: d, Reason: fmt.Sprintf(
				"ambiguous column: %s (bound by %s)", col, strings.Join(aliases, ", "))}
			return false, walkErr
		}
	}, stmt)
	return walkErr
}
