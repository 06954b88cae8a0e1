// Package types defines the request and response shapes of the translation
// API.
package types

// SchemaPayload is the schema input attached to a request. Kind selects the
// shape; exactly one payload field matching it must be set. An absent
// payload disables schema-aware validation.
type SchemaPayload struct {
	// Kind is one of "ddl", "canonical", "tables", "sample".
	Kind string `json:"kind"`

	DDL       string                       `json:"ddl,omitempty"`
	Canonical map[string]map[string]string `json:"canonical,omitempty"`
	Tables    []TableEntry                 `json:"tables,omitempty"`
	Sample    *SamplePayload               `json:"sample,omitempty"`
}

// TableEntry is one (table, columns) pair of a "tables" payload.
type TableEntry struct {
	Name    string        `json:"name"`
	Columns []ColumnEntry `json:"columns"`
}

// ColumnEntry is one (name, type) pair.
type ColumnEntry struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// SamplePayload is the flat benchmark-dataset schema shape.
type SamplePayload struct {
	TableNames   []string `json:"table_names"`
	ColumnTables []int    `json:"column_tables"`
	ColumnNames  []string `json:"column_names"`
	ColumnTypes  []string `json:"column_types"`
}

// TranslateRequest asks for one query to be translated.
type TranslateRequest struct {
	Query    string         `json:"query"`
	Schema   *SchemaPayload `json:"schema,omitempty"`
	Catalog  string         `json:"catalog,omitempty"`
	Database string         `json:"database,omitempty"`
}

// TranslateResponse carries the translated query.
type TranslateResponse struct {
	Success bool                  `json:"success"`
	Data    *TranslateSuccessData `json:"data,omitempty"`
}

// TranslateSuccessData is the payload of a successful translation.
type TranslateSuccessData struct {
	RequestID     string `json:"requestId"`
	Query         string `json:"query"`
	Translated    string `json:"translated"`
	SourceDialect string `json:"sourceDialect"`
	TargetDialect string `json:"targetDialect"`
}

// ValidateRequest asks for one query to be validated without translation.
type ValidateRequest struct {
	Query    string         `json:"query"`
	Schema   *SchemaPayload `json:"schema,omitempty"`
	Catalog  string         `json:"catalog,omitempty"`
	Database string         `json:"database,omitempty"`
}

// ValidateResponse reports the validation outcome. An invalid query is a
// successful response; only malformed requests error.
type ValidateResponse struct {
	Success bool                 `json:"success"`
	Data    *ValidateSuccessData `json:"data,omitempty"`
}

// ValidateSuccessData is the payload of a validation call.
type ValidateSuccessData struct {
	RequestID string `json:"requestId"`
	Valid     bool   `json:"valid"`
	Rewritten string `json:"rewritten,omitempty"`
	Error     string `json:"error,omitempty"`
	Code      string `json:"code,omitempty"`
	Category  string `json:"category,omitempty"`
}

// NormalizeRequest asks for a schema payload to be normalized into the
// canonical shape.
type NormalizeRequest struct {
	Schema SchemaPayload `json:"schema"`
}

// NormalizeResponse carries the canonical schema and any skipped-input
// diagnostics.
type NormalizeResponse struct {
	Success bool                  `json:"success"`
	Data    *NormalizeSuccessData `json:"data,omitempty"`
}

// NormalizeSuccessData is the payload of a normalization call.
type NormalizeSuccessData struct {
	RequestID   string                       `json:"requestId"`
	Catalog     string                       `json:"catalog,omitempty"`
	Database    string                       `json:"database,omitempty"`
	Tables      map[string]map[string]string `json:"tables"`
	Diagnostics []DiagnosticEntry            `json:"diagnostics,omitempty"`
}

// DiagnosticEntry is one skipped input fragment.
type DiagnosticEntry struct {
	Statement string `json:"statement"`
	Reason    string `json:"reason"`
}
