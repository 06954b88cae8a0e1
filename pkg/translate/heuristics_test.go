package translate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFixQuotes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "doubled single quote becomes escaped",
			input:    `SELECT 'It''s here' FROM t`,
			expected: `SELECT 'It\'s here' FROM t`,
		},
		{
			name:     "already escaped quote untouched",
			input:    `SELECT 'It\'s here' FROM t`,
			expected: `SELECT 'It\'s here' FROM t`,
		},
		{
			name:     "no quotes",
			input:    "SELECT 1",
			expected: "SELECT 1",
		},
		{
			name:     "multiple occurrences",
			input:    `SELECT 'a''b', 'c''d'`,
			expected: `SELECT 'a\'b', 'c\'d'`,
		},
		{
			name:     "odd run leaves the trailing quote alone",
			input:    `SELECT 'It'''s here'`,
			expected: `SELECT 'It\''s here'`,
		},
		{
			name:     "run of four becomes two escapes",
			input:    `SELECT ''''`,
			expected: `SELECT \'\'`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FixQuotes(tt.input)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("FixQuotes() mismatch (-want +got):\n%s", diff)
			}
			if again := FixQuotes(got); again != got {
				t.Errorf("FixQuotes() not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestBacktickIdentifiers(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "double quotes become backticks",
			input:    `SELECT "name" FROM "users"`,
			expected: "SELECT `name` FROM `users`",
		},
		{
			name:     "already backticked untouched",
			input:    "SELECT `name` FROM `users`",
			expected: "SELECT `name` FROM `users`",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BacktickIdentifiers(tt.input)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("BacktickIdentifiers() mismatch (-want +got):\n%s", diff)
			}
			if again := BacktickIdentifiers(got); again != got {
				t.Errorf("BacktickIdentifiers() not idempotent: %q -> %q", got, again)
			}
		})
	}
}
