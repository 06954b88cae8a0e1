package schema

import (
	"regexp"
	"strings"
)

// tablePattern matches one CREATE [OR REPLACE] TABLE statement and captures
// the (optionally backtick-quoted, possibly dotted) table name and the column
// body between the outermost parentheses.
var tablePattern = regexp.MustCompile(
	`(?is)^\s*CREATE\s+(?:OR\s+REPLACE\s+)?TABLE\s+` +
		"`?" + `([\w.\-]+)` + "`?" + `\s*\((.*)\)\s*;$`,
)

// columnPattern matches a "name type" pair at the start of a column line,
// with optional backticks around the name.
var columnPattern = regexp.MustCompile("^\\s*`?\\s*(\\w+)`?\\s+(\\w+)")

// FromDDL extracts the canonical schema from a string of semicolon-newline
// separated CREATE TABLE statements. Malformed statements are skipped rather
// than aborting the batch; each skip is reported as a diagnostic.
func FromDDL(ddls string) (*Schema, []Diagnostic, error) {
	var (
		tables []Table
		diags  []Diagnostic
	)
	for _, stmt := range strings.Split(ddls, ";\n") {
		stmt = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(stmt), ";"))
		if stmt == "" {
			continue
		}
		stmt += ";"
		table, ok := extractTable(stmt)
		if !ok {
			diags = append(diags, Diagnostic{
				Statement: stmt,
				Reason:    "not a parseable CREATE TABLE statement",
			})
			continue
		}
		tables = append(tables, table)
	}
	sc, err := FromTables(tables)
	if err != nil {
		return nil, diags, err
	}
	return sc, diags, nil
}

// extractTable pulls the table name and column pairs out of a single CREATE
// TABLE statement. Comment lines, INSERT INTO lines, and parenthesis-led
// sample-value lines inside the body are ignored.
func extractTable(stmt string) (Table, bool) {
	m := tablePattern.FindStringSubmatch(stmt)
	if m == nil {
		return Table{}, false
	}
	name := m[1]
	body := strings.TrimSpace(m[2])
	if name == "" || body == "" {
		return Table{}, false
	}

	var cols []Column
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" ||
			strings.HasPrefix(trimmed, "--") ||
			strings.HasPrefix(trimmed, "(") ||
			hasKeywordPrefix(trimmed, "INSERT") {
			continue
		}
		// A line may declare several comma-separated columns.
		for _, segment := range strings.Split(line, ",") {
			cm := columnPattern.FindStringSubmatch(segment)
			if cm == nil {
				continue
			}
			cols = append(cols, Column{Name: cm[1], Type: cm[2]})
		}
	}
	if len(cols) == 0 {
		return Table{}, false
	}
	return Table{Name: name, Columns: cols}, true
}

func hasKeywordPrefix(line, keyword string) bool {
	if len(line) < len(keyword) {
		return false
	}
	return strings.EqualFold(line[:len(keyword)], keyword)
}
