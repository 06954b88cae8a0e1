package dialect

import (
	"strings"

	"github.com/blastrain/vitess-sqlparser/sqlparser"
)

// Parse parses exactly one SQL statement under strict error reporting: the
// first parse error aborts, and multi-statement input is rejected.
func Parse(sql string, d Dialect) (sqlparser.Statement, error) {
	stmts := SplitStatements(sql)
	if len(stmts) == 0 {
		return nil, &ParseError{Dialect: d, Err: errEmptyStatement}
	}
	if len(stmts) > 1 {
		return nil, &ParseError{Dialect: d, Err: errMultipleStatements}
	}
	stmt, err := sqlparser.Parse(stmts[0])
	if err != nil {
		return nil, &ParseError{Dialect: d, Err: err}
	}
	return stmt, nil
}

// Render serializes the AST back to SQL text in the given dialect's syntax.
// Keyword casing follows the underlying parser; dialect-specific lexical
// conventions (identifier quoting) are applied by the post-processor.
func Render(stmt sqlparser.Statement, d Dialect) string {
	sql := sqlparser.String(stmt)
	if d == BigQuery {
		sql = applyRenderRewrites(sql)
	}
	return sql
}

// SplitStatements splits SQL text on top-level semicolons, ignoring
// semicolons inside quoted strings and backtick identifiers. Empty pieces
// are dropped.
func SplitStatements(sql string) []string {
	var (
		pieces  []string
		start   int
		inQuote rune
	)
	runes := []rune(sql)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case inQuote != 0:
			if c == '\\' && inQuote != '`' {
				i++ // skip escaped character
			} else if c == inQuote {
				inQuote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			inQuote = c
		case c == ';':
			pieces = append(pieces, string(runes[start:i]))
			start = i + 1
		}
	}
	if start < len(runes) {
		pieces = append(pieces, string(runes[start:]))
	}

	var out []string
	for _, p := range pieces {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var (
	errEmptyStatement     = strError("empty statement")
	errMultipleStatements = strError("expected exactly one statement")
)

type strError string

func (e strError) Error() string { return string(e) }
