package dialect

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:  "simple select",
			input: "SELECT id FROM users",
		},
		{
			name:  "trailing semicolon",
			input: "SELECT id FROM users;",
		},
		{
			name:    "empty input",
			input:   "   ",
			wantErr: true,
		},
		{
			name:    "multiple statements",
			input:   "SELECT 1 FROM a; SELECT 2 FROM b",
			wantErr: true,
		},
		{
			name:    "syntax error",
			input:   "SELEC id FROM users",
			wantErr: true,
		},
		{
			name:  "semicolon inside string literal",
			input: "SELECT 'a;b' FROM users",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := Parse(tt.input, BigQuery)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Parse() succeeded, want error")
				}
				var pe *ParseError
				if !errors.As(err, &pe) {
					t.Fatalf("Parse() error = %T, want *ParseError", err)
				}
				if pe.Dialect != BigQuery {
					t.Errorf("ParseError.Dialect = %q, want %q", pe.Dialect, BigQuery)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if stmt == nil {
				t.Fatal("Parse() returned nil statement")
			}
		})
	}
}

func TestSplitStatements(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "single statement",
			input:    "SELECT 1 FROM a",
			expected: []string{"SELECT 1 FROM a"},
		},
		{
			name:     "two statements",
			input:    "SELECT 1 FROM a; SELECT 2 FROM b",
			expected: []string{"SELECT 1 FROM a", "SELECT 2 FROM b"},
		},
		{
			name:     "trailing semicolon drops empty piece",
			input:    "SELECT 1 FROM a;",
			expected: []string{"SELECT 1 FROM a"},
		},
		{
			name:     "semicolon in single-quoted string",
			input:    "SELECT 'a;b' FROM t",
			expected: []string{"SELECT 'a;b' FROM t"},
		},
		{
			name:     "semicolon in backtick identifier",
			input:    "SELECT `a;b` FROM t",
			expected: []string{"SELECT `a;b` FROM t"},
		},
		{
			name:     "escaped quote does not close string",
			input:    `SELECT 'a\';b' FROM t`,
			expected: []string{`SELECT 'a\';b' FROM t`},
		},
		{
			name:     "blank input",
			input:    " ;; ",
			expected: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitStatements(tt.input)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("SplitStatements() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderRewrites(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "niladic timestamp keyword",
			input:    "SELECT CURRENT_TIMESTAMP FROM t",
			expected: "select CURRENT_TIMESTAMP from t",
		},
		{
			name:     "group concat",
			input:    "SELECT GROUP_CONCAT(name) FROM t",
			expected: "select STRING_AGG(name) from t",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := Parse(tt.input, BigQuery)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			got := Render(stmt, BigQuery)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Render() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
