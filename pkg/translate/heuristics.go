// Package translate orchestrates the full translation pipeline: heuristics,
// validation, correction, transpilation, and final lexical fixups.
package translate

import "strings"

// FixQuotes normalizes doubled single-quotes to an escaped single quote.
// The scan moves left to right and consumes both characters of each escape,
// so a quote emitted by one rewrite never pairs with the character after it.
// Idempotent; it runs both before validation and after transpilation.
func FixQuotes(sql string) string {
	if !strings.Contains(sql, "''") {
		return sql
	}
	var b strings.Builder
	b.Grow(len(sql) + 2)
	for i := 0; i < len(sql); i++ {
		switch {
		case sql[i] == '\\' && i+1 < len(sql):
			b.WriteByte(sql[i])
			b.WriteByte(sql[i+1])
			i++
		case sql[i] == '\'' && i+1 < len(sql) && sql[i+1] == '\'':
			b.WriteString(`\'`)
			i++
		default:
			b.WriteByte(sql[i])
		}
	}
	return b.String()
}

// BacktickIdentifiers replaces double-quote identifier delimiters with the
// target's backtick convention. A final-mile string substitution rather than
// an AST rewrite: the renderer emits one quoting style that the deployment's
// lexical conventions override. Idempotent.
func BacktickIdentifiers(sql string) string {
	return strings.ReplaceAll(sql, `"`, "`")
}
