// sample/main.go - Translation Verification
//
// This sample runs a set of source-dialect queries through the full
// pipeline and then dry-runs the translated output against an in-memory
// DuckDB instance materialized from the schema. It verifies that what the
// transpiler emits would actually prepare against the declared tables.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/dbagentlabs/sqlbridge/pkg/schema"
	"github.com/dbagentlabs/sqlbridge/pkg/translate"
	"github.com/dbagentlabs/sqlbridge/pkg/validate"
)

func main() {
	ctx := context.Background()

	ddl := `CREATE TABLE test_users (id INT64, name STRING, email STRING, score INT64);
CREATE TABLE test_orders (id INT64, user_id INT64, amount FLOAT64);`

	sc, _, err := schema.Source{Kind: schema.KindDDL, DDL: ddl}.Normalize()
	if err != nil {
		log.Fatalf("Failed to normalize schema: %v", err)
	}

	checker, err := validate.NewExecChecker()
	if err != nil {
		log.Fatalf("Failed to open dry-run instance: %v", err)
	}
	defer checker.Close()

	if err := checker.Materialize(ctx, sc); err != nil {
		log.Fatalf("Failed to materialize schema: %v", err)
	}

	translator := translate.New(nil)

	fmt.Println("=== SQL Translation Verification ===")
	fmt.Println("Translates source queries and dry-runs the output against DuckDB.")
	fmt.Println()

	testCases := []struct {
		name      string
		sourceSQL string
	}{
		{
			name:      "INSTR",
			sourceSQL: "SELECT name FROM test_users WHERE INSTR(email, '@') > 0",
		},
		{
			name:      "TOTAL",
			sourceSQL: "SELECT TOTAL(amount) FROM test_orders",
		},
		{
			name:      "SUBSTR",
			sourceSQL: "SELECT SUBSTR(name, 1, 3) FROM test_users",
		},
		{
			name:      "Join with unqualified columns",
			sourceSQL: "SELECT name, amount FROM test_users, test_orders WHERE user_id = test_users.id",
		},
	}

	passed := 0
	failed := 0

	for _, tc := range testCases {
		fmt.Printf("--- %s ---\n", tc.name)
		fmt.Printf("Source:     %s\n", tc.sourceSQL)

		translated, err := translator.Translate(ctx, translate.Request{
			Query:  tc.sourceSQL,
			Schema: sc,
		})
		if err != nil {
			fmt.Printf("FAIL: Translation error: %v\n\n", err)
			failed++
			continue
		}
		fmt.Printf("Translated: %s\n", translated)

		if err := checker.Check(ctx, translated); err != nil {
			fmt.Printf("FAIL: Dry run rejected: %v\n\n", err)
			failed++
			continue
		}

		fmt.Println("PASS")
		fmt.Println()
		passed++
	}

	fmt.Printf("=== Results: %d passed, %d failed ===\n", passed, failed)
}
