// Example: Using the translator as an embedded library
//
// This example demonstrates how to use the translation pipeline directly in
// your application without starting an HTTP server. A scripted generator
// stands in for the Gemini API so the example runs offline.
//
// Run this example:
//
//	go run ./example/embedded
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/dbagentlabs/sqlbridge/pkg/correction"
	"github.com/dbagentlabs/sqlbridge/pkg/llm"
	"github.com/dbagentlabs/sqlbridge/pkg/schema"
	"github.com/dbagentlabs/sqlbridge/pkg/translate"
)

func main() {
	fmt.Println("=== Embedded Translation Example ===")

	// Normalize a schema from DDL text.
	ddl := `CREATE TABLE users (id INT64, name STRING);
CREATE TABLE orders (id INT64, user_id INT64, amount FLOAT64);`

	sc, diags, err := schema.Source{Kind: schema.KindDDL, DDL: ddl}.Normalize()
	if err != nil {
		log.Fatalf("Failed to normalize schema: %v", err)
	}
	for _, d := range diags {
		fmt.Printf("skipped: %s (%s)\n", d.Statement, d.Reason)
	}
	fmt.Printf("Schema:\n%s\n", sc.Render())

	// A scripted generator repairs the broken query below. In production,
	// use llm.NewGeminiGenerator instead.
	gen := llm.NewScriptedGenerator([]string{
		"```sql\nSELECT name FROM users\n```",
	})
	loop := &correction.Loop{Generator: gen, Candidates: 1}
	translator := translate.New(loop)

	ctx := context.Background()

	// A valid query passes straight through the transpiler.
	out, err := translator.Translate(ctx, translate.Request{
		Query:  "SELECT TOTAL(amount) FROM orders",
		Schema: sc,
	})
	if err != nil {
		log.Fatalf("Translate failed: %v", err)
	}
	fmt.Printf("Translated: %s\n", out)

	// A broken query goes through the correction loop first.
	out, err = translator.Translate(ctx, translate.Request{
		Query:  "SELEC name FROM users",
		Schema: sc,
	})
	if err != nil {
		log.Fatalf("Translate failed: %v", err)
	}
	fmt.Printf("Repaired and translated: %s\n", out)

	fmt.Println("=== Example Complete ===")
}
