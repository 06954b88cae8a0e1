// Package schema normalizes heterogeneous schema inputs into the canonical
// catalog → database → table → column → type mapping used by validation and
// transpilation.
package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Columns maps a column name to its declared type.
type Columns map[string]string

// Column is one (name, type) pair in declaration order.
type Column struct {
	Name string
	Type string
}

// Table is the intermediate representation produced by DDL extraction:
// a table name (possibly dotted) and its columns in declaration order.
type Table struct {
	Name    string
	Columns []Column
}

// Schema is the canonical schema. Catalog and Database are empty unless the
// originating table names carried catalog.database.table qualification.
// Table names are unique within a schema; column names are unique per table.
type Schema struct {
	Catalog  string
	Database string
	Tables   map[string]Columns
}

// Diagnostic records one input fragment that was skipped during
// normalization, together with the reason it was skipped.
type Diagnostic struct {
	Statement string
	Reason    string
}

// FormatError indicates the schema input could not be interpreted: it matched
// none of the recognized shapes, or an entry used an unknown type token.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "schema format: " + e.Reason
}

// SourceKind declares which input shape a Source carries. Callers state the
// shape explicitly instead of relying on runtime shape sniffing.
type SourceKind int

const (
	// KindDDL is a string of one or more CREATE TABLE statements.
	KindDDL SourceKind = iota
	// KindCanonical is an already-canonical Schema.
	KindCanonical
	// KindTables is a list of (table, columns) entries.
	KindTables
	// KindSample is a flat benchmark-dataset sample.
	KindSample
)

func (k SourceKind) String() string {
	switch k {
	case KindDDL:
		return "ddl"
	case KindCanonical:
		return "canonical"
	case KindTables:
		return "tables"
	case KindSample:
		return "sample"
	}
	return fmt.Sprintf("unknown(%d)", int(k))
}

// Source is the tagged union accepted at the normalization boundary.
// Exactly one of the payload fields corresponding to Kind must be set.
type Source struct {
	Kind      SourceKind
	DDL       string
	Canonical *Schema
	Tables    []Table
	Sample    *Sample
}

// Normalize produces the canonical schema for the declared source shape.
// DDL normalization additionally returns diagnostics for statements that
// were skipped as malformed; the other shapes never skip.
func (s Source) Normalize() (*Schema, []Diagnostic, error) {
	switch s.Kind {
	case KindDDL:
		return FromDDL(s.DDL)
	case KindCanonical:
		if s.Canonical == nil {
			return nil, nil, &FormatError{Reason: "canonical source with nil schema"}
		}
		return s.Canonical, nil, nil
	case KindTables:
		sc, err := FromTables(s.Tables)
		return sc, nil, err
	case KindSample:
		if s.Sample == nil {
			return nil, nil, &FormatError{Reason: "sample source with nil sample"}
		}
		sc, err := FromSample(s.Sample)
		return sc, nil, err
	}
	return nil, nil, &FormatError{Reason: fmt.Sprintf("unsupported schema source: %s", s.Kind)}
}

// FromTables builds the canonical schema from (table, columns) entries.
// Dotted table names contribute the database and catalog levels; the last
// qualified name wins when entries disagree.
func FromTables(tables []Table) (*Schema, error) {
	sc := &Schema{Tables: make(map[string]Columns, len(tables))}
	for _, t := range tables {
		catalog, db, name, err := SplitTableName(t.Name)
		if err != nil {
			return nil, err
		}
		cols := make(Columns, len(t.Columns))
		for _, c := range t.Columns {
			cols[c.Name] = c.Type
		}
		sc.Tables[name] = cols
		if db != "" {
			sc.Database = db
		}
		if catalog != "" {
			sc.Catalog = catalog
		}
	}
	return sc, nil
}

// Lookup returns the columns of the named table. Matching is
// case-insensitive; identifiers reach the resolver in whatever case the
// query author wrote them.
func (s *Schema) Lookup(table string) (Columns, bool) {
	if cols, ok := s.Tables[table]; ok {
		return cols, true
	}
	for name, cols := range s.Tables {
		if strings.EqualFold(name, table) {
			return cols, true
		}
	}
	return nil, false
}

// HasColumn reports whether the named table declares the column, matching
// both names case-insensitively.
func (s *Schema) HasColumn(table, column string) bool {
	cols, ok := s.Lookup(table)
	if !ok {
		return false
	}
	if _, ok := cols[column]; ok {
		return true
	}
	for name := range cols {
		if strings.EqualFold(name, column) {
			return true
		}
	}
	return false
}

// TablesWithColumn returns the sorted names of all tables declaring the
// column. Used to point at the owning tables when an unqualified column
// does not resolve.
func (s *Schema) TablesWithColumn(column string) []string {
	var names []string
	for table := range s.Tables {
		if s.HasColumn(table, column) {
			names = append(names, table)
		}
	}
	sort.Strings(names)
	return names
}

// TableNames returns the sorted table names.
func (s *Schema) TableNames() []string {
	names := make([]string, 0, len(s.Tables))
	for name := range s.Tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// QualifiedName returns the table name prefixed with the schema's catalog
// and database levels, when present.
func (s *Schema) QualifiedName(table string) string {
	parts := make([]string, 0, 3)
	if s.Catalog != "" {
		parts = append(parts, s.Catalog)
	}
	if s.Database != "" {
		parts = append(parts, s.Database)
	}
	parts = append(parts, table)
	return strings.Join(parts, ".")
}

// Render produces a human-readable schema block for correction prompts.
func (s *Schema) Render() string {
	var b strings.Builder
	for _, table := range s.TableNames() {
		fmt.Fprintf(&b, "Table %s:\n", s.QualifiedName(table))
		cols := s.Tables[table]
		names := make([]string, 0, len(cols))
		for name := range cols {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "  %s %s\n", name, cols[name])
		}
	}
	return b.String()
}

// RenderDDL renders the schema back to CREATE TABLE statements. The output
// round-trips through FromDDL.
func (s *Schema) RenderDDL() string {
	var b strings.Builder
	for i, table := range s.TableNames() {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "CREATE TABLE %s (\n", s.QualifiedName(table))
		cols := s.Tables[table]
		names := make([]string, 0, len(cols))
		for name := range cols {
			names = append(names, name)
		}
		sort.Strings(names)
		for j, name := range names {
			sep := ","
			if j == len(names)-1 {
				sep = ""
			}
			fmt.Fprintf(&b, "    %s %s%s\n", name, cols[name], sep)
		}
		b.WriteString(");\n")
	}
	return b.String()
}

// SplitTableName decomposes a possibly-dotted table name into catalog,
// database, and table parts. One part is a bare table, two parts are
// database.table, three parts are catalog.database.table.
func SplitTableName(name string) (catalog, database, table string, err error) {
	parts := strings.Split(name, ".")
	switch len(parts) {
	case 1:
		return "", "", parts[0], nil
	case 2:
		return "", parts[0], parts[1], nil
	case 3:
		return parts[0], parts[1], parts[2], nil
	}
	return "", "", "", fmt.Errorf("invalid table name: %q", name)
}
