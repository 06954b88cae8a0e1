package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromDDL(t *testing.T) {
	tests := []struct {
		name      string
		ddl       string
		want      *Schema
		wantDiags int
		wantErr   bool
	}{
		{
			name: "SingleLineQualified",
			ddl:  "CREATE TABLE proj.ds.t (id INT64, name STRING);",
			want: &Schema{
				Catalog:  "proj",
				Database: "ds",
				Tables: map[string]Columns{
					"t": {"id": "INT64", "name": "STRING"},
				},
			},
		},
		{
			name: "MultiLineWithBackticks",
			ddl: "CREATE TABLE `ds.users` (\n" +
				"  `id` INT64 NOT NULL,\n" +
				"  name STRING\n" +
				");",
			want: &Schema{
				Database: "ds",
				Tables: map[string]Columns{
					"users": {"id": "INT64", "name": "STRING"},
				},
			},
		},
		{
			name: "OrReplace",
			ddl:  "CREATE OR REPLACE TABLE t (id INT64);",
			want: &Schema{
				Tables: map[string]Columns{"t": {"id": "INT64"}},
			},
		},
		{
			name: "MultipleStatements",
			ddl: "CREATE TABLE a (id INT64);\n" +
				"CREATE TABLE b (ref INT64, note STRING);",
			want: &Schema{
				Tables: map[string]Columns{
					"a": {"id": "INT64"},
					"b": {"ref": "INT64", "note": "STRING"},
				},
			},
		},
		{
			name: "SkipsCommentsInsertsAndSampleRows",
			ddl: "CREATE TABLE t (\n" +
				"  -- primary identifier\n" +
				"  id INT64,\n" +
				"  INSERT INTO t VALUES\n" +
				"  (1),\n" +
				"  name STRING\n" +
				");",
			want: &Schema{
				Tables: map[string]Columns{"t": {"id": "INT64", "name": "STRING"}},
			},
		},
		{
			name: "MalformedStatementSkippedWithDiagnostic",
			ddl: "CREATE TABLE good (id INT64);\n" +
				"CREATE VIEW bad AS SELECT 1;\n" +
				"CREATE TABLE also_good (x STRING);",
			want: &Schema{
				Tables: map[string]Columns{
					"good":      {"id": "INT64"},
					"also_good": {"x": "STRING"},
				},
			},
			wantDiags: 1,
		},
		{
			name:      "EmptyInput",
			ddl:       "",
			want:      &Schema{Tables: map[string]Columns{}},
			wantDiags: 0,
		},
		{
			name:    "OverQualifiedTableName",
			ddl:     "CREATE TABLE a.b.c.d (id INT64);",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, diags, err := FromDDL(tt.ddl)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FromDDL() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(diags) != tt.wantDiags {
				t.Errorf("FromDDL() diagnostics = %v, want %d entries", diags, tt.wantDiags)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FromDDL() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
