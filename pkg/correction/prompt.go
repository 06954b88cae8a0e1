// Package correction repairs queries that failed validation by asking the
// text-generation collaborator for a dialect-correct rewrite.
package correction

import (
	"fmt"

	"github.com/dbagentlabs/sqlbridge/pkg/dialect"
	"github.com/dbagentlabs/sqlbridge/pkg/schema"
)

// correctionPrompt instructs the collaborator to fix dialect formatting
// without touching identifiers or literals.
const correctionPrompt = `You are an expert in multiple databases and SQL dialects.
You are given a SQL query that is formatted for the SQL dialect:
%s

The SQL query is:
%s
%s
This SQL query could have the following errors:
%s

Please correct the SQL query to make sure it is formatted correctly for the SQL dialect:
%s

Do not change any table or column names in the query. However, you may qualify column names with table names.
Do not change any literals in the query.
You may *only* rewrite the query so that it is formatted correctly for the specified SQL dialect.
Do not return any other information other than the corrected SQL query.

Corrected SQL query:
`

// BuildPrompt assembles the correction prompt. The schema block is inserted
// only when a schema is available.
func BuildPrompt(d dialect.Dialect, query, errText string, sc *schema.Schema) string {
	schemaInsert := "\n"
	if sc != nil && len(sc.Tables) > 0 {
		schemaInsert = fmt.Sprintf("\nThe database schema is:\n%s\n", sc.Render())
	}
	return fmt.Sprintf(correctionPrompt, d, query, schemaInsert, errText, d)
}
