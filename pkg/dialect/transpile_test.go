package dialect

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTranspileSQLiteToBigQuery(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "random rename",
			input:    "SELECT RANDOM() FROM t",
			expected: "select RAND() from t",
		},
		{
			name:     "instr rename",
			input:    "SELECT INSTR(name, 'a') FROM t",
			expected: "select STRPOS(name, 'a') from t",
		},
		{
			name:     "last insert rowid",
			input:    "SELECT LAST_INSERT_ROWID() FROM t",
			expected: "select LAST_INSERT_ID() from t",
		},
		{
			name:     "total becomes coalesced sum",
			input:    "SELECT TOTAL(amount) FROM sales",
			expected: "select COALESCE(SUM(amount), 0) from sales",
		},
		{
			name:     "case insensitive function match",
			input:    "SELECT random() FROM t",
			expected: "select RAND() from t",
		},
		{
			name:     "unmapped function passes through",
			input:    "SELECT ABS(x) FROM t",
			expected: "select ABS(x) from t",
		},
		{
			name:     "group concat",
			input:    "SELECT GROUP_CONCAT(name) FROM t",
			expected: "select STRING_AGG(name) from t",
		},
		{
			name:    "empty input",
			input:   "  ",
			wantErr: true,
		},
		{
			name:    "multiple statements",
			input:   "SELECT 1 FROM a; SELECT 2 FROM b",
			wantErr: true,
		},
		{
			name:    "source parse failure",
			input:   "SELEC 1 FROM a",
			wantErr: true,
		},
	}
	tr := NewTranspiler(SQLite, BigQuery)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tr.Transpile(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Transpile() = %q, want error", got)
				}
				var te *TranspileError
				if !errors.As(err, &te) {
					t.Fatalf("Transpile() error = %T, want *TranspileError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Transpile() error = %v", err)
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Transpile() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTranspileOtherPairPassesThrough(t *testing.T) {
	tr := NewTranspiler(MySQL, BigQuery)
	got, err := tr.Transpile("SELECT RANDOM() FROM t")
	if err != nil {
		t.Fatalf("Transpile() error = %v", err)
	}
	if got != "select RANDOM() from t" {
		t.Errorf("Transpile() = %q, want function untouched", got)
	}
}
