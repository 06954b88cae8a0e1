package schema

import "fmt"

// Sample is the flat benchmark-dataset representation of a database schema:
// table names plus positionally aligned column/table-id/type arrays. The
// first column entry is conventionally the "*" placeholder and is skipped.
type Sample struct {
	TableNames   []string
	ColumnTables []int
	ColumnNames  []string
	ColumnTypes  []string
}

// sampleTypeMap maps declared sample type tokens to canonical type names.
var sampleTypeMap = map[string]string{
	"text":      "TEXT",
	"number":    "FLOAT",
	"date":      "DATE",
	"datetime":  "DATETIME",
	"time":      "TIME",
	"timestamp": "TIMESTAMP",
	"bool":      "BOOL",
}

// FromSample builds the canonical schema from a benchmark sample. An unknown
// type token or a misaligned array is a FormatError.
func FromSample(s *Sample) (*Schema, error) {
	if len(s.ColumnNames) != len(s.ColumnTypes) || len(s.ColumnNames) != len(s.ColumnTables) {
		return nil, &FormatError{Reason: fmt.Sprintf(
			"misaligned sample arrays: %d names, %d types, %d table ids",
			len(s.ColumnNames), len(s.ColumnTypes), len(s.ColumnTables))}
	}

	start := 0
	if len(s.ColumnNames) > 0 && s.ColumnNames[0] == "*" {
		start = 1
	}

	sc := &Schema{Tables: make(map[string]Columns, len(s.TableNames))}
	for i := start; i < len(s.ColumnNames); i++ {
		tableID := s.ColumnTables[i]
		if tableID < 0 || tableID >= len(s.TableNames) {
			return nil, &FormatError{Reason: fmt.Sprintf(
				"sample column %q references table id %d out of %d tables",
				s.ColumnNames[i], tableID, len(s.TableNames))}
		}
		mapped, ok := sampleTypeMap[s.ColumnTypes[i]]
		if !ok {
			return nil, &FormatError{Reason: fmt.Sprintf(
				"unmapped sample column type: %q", s.ColumnTypes[i])}
		}
		table := s.TableNames[tableID]
		if sc.Tables[table] == nil {
			sc.Tables[table] = make(Columns)
		}
		sc.Tables[table][s.ColumnNames[i]] = mapped
	}
	return sc, nil
}
