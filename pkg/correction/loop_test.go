package correction

import (
	"context"
	"strings"
	"testing"

	"github.com/dbagentlabs/sqlbridge/pkg/dialect"
	"github.com/dbagentlabs/sqlbridge/pkg/llm"
	"github.com/dbagentlabs/sqlbridge/pkg/schema"
	"github.com/dbagentlabs/sqlbridge/pkg/validate"
)

func testValidator() *validate.Validator {
	return &validate.Validator{
		Dialect: dialect.BigQuery,
		Schema: &schema.Schema{
			Tables: map[string]schema.Columns{
				"users": {"id": "INT64", "name": "STRING"},
			},
		},
	}
}

func TestExtractSQL(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
		ok       bool
	}{
		{
			name:     "SimpleFence",
			response: "Here you go:\n```sql\nSELECT 1\n```\nthanks",
			want:     "SELECT 1",
			ok:       true,
		},
		{
			name:     "FirstOfTwoFences",
			response: "```sql\nSELECT a\n```\n```sql\nSELECT b\n```",
			want:     "SELECT a",
			ok:       true,
		},
		{
			name:     "NoFence",
			response: "I could not produce a query.",
			ok:       false,
		},
		{
			name:     "CaseSensitiveTag",
			response: "```SQL\nSELECT 1\n```",
			ok:       false,
		},
		{
			name:     "MultilineContent",
			response: "```sql\nSELECT id\nFROM users\n```",
			want:     "SELECT id\nFROM users",
			ok:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractSQL(tt.response)
			if ok != tt.ok {
				t.Fatalf("ExtractSQL() ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("ExtractSQL() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestLoop_SelectsFirstParseableByIndex pins candidate selection to
// submission order: only the k-th response carries a fenced block, and that
// block is the output.
func TestLoop_SelectsFirstParseableByIndex(t *testing.T) {
	responses := []string{
		"no fence here",
		llm.PlaceholderTimeout,
		"```sql\nSELECT id FROM users\n```",
		"```sql\nSELECT name FROM users\n```",
	}
	loop := &Loop{
		Generator:  &llm.ScriptedBatch{Responses: responses},
		Candidates: 4,
	}

	got := loop.Repair(context.Background(), testValidator(), "SELECT broken", "syntax error")
	if want := "SELECT id FROM users"; got != want {
		t.Errorf("Repair() = %q, want %q", got, want)
	}
}

func TestLoop_AllNullCandidatesFallsBackToOriginal(t *testing.T) {
	responses := []string{
		"nothing useful",
		llm.PlaceholderTimeout,
		llm.PlaceholderError + ": boom",
	}
	loop := &Loop{
		Generator:  &llm.ScriptedBatch{Responses: responses},
		Candidates: 3,
	}

	original := "SELECT broken FROM"
	if got := loop.Repair(context.Background(), testValidator(), original, "syntax error"); got != original {
		t.Errorf("Repair() = %q, want the original query back", got)
	}
}

func TestLoop_RevalidateRejectsBadCandidate(t *testing.T) {
	loop := &Loop{
		Generator:  &llm.ScriptedBatch{Responses: []string{"```sql\nSELECT nope FROM users\n```"}},
		Candidates: 1,
		Revalidate: true,
	}

	original := "SELECT broken"
	if got := loop.Repair(context.Background(), testValidator(), original, "err"); got != original {
		t.Errorf("Repair() = %q, want fallback to original on failed revalidation", got)
	}
}

func TestLoop_RevalidateKeepsGoodCandidate(t *testing.T) {
	loop := &Loop{
		Generator:  &llm.ScriptedBatch{Responses: []string{"```sql\nSELECT id FROM users\n```"}},
		Candidates: 1,
		Revalidate: true,
	}

	got := loop.Repair(context.Background(), testValidator(), "SELECT broken", "err")
	if want := "SELECT id FROM users"; got != want {
		t.Errorf("Repair() = %q, want %q", got, want)
	}
}

func TestBuildPrompt(t *testing.T) {
	v := testValidator()
	prompt := BuildPrompt(v.Dialect, "SELECT 1", "some error", v.Schema)

	for _, fragment := range []string{
		"bigquery",
		"SELECT 1",
		"some error",
		"The database schema is:",
		"Table users:",
	} {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("BuildPrompt() missing %q", fragment)
		}
	}

	noSchema := BuildPrompt(v.Dialect, "SELECT 1", "err", nil)
	if strings.Contains(noSchema, "The database schema is:") {
		t.Error("BuildPrompt() rendered a schema block without a schema")
	}
}
