// Example: Using the translation service over HTTP
//
// This example demonstrates how to call the translation API from any
// language with an HTTP client.
//
// Start the service:
//
//	go run ./cmd/server
//
// Then run this example:
//
//	go run ./example/restapi
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
)

var baseURL = getBaseURL()

func getBaseURL() string {
	host := os.Getenv("SQLBRIDGE_HOST")
	if host == "" {
		host = "localhost:8080"
	}
	return fmt.Sprintf("http://%s/v1", host)
}

// TranslateRequest is the translation request body.
type TranslateRequest struct {
	Query  string         `json:"query"`
	Schema *SchemaPayload `json:"schema,omitempty"`
}

// SchemaPayload is the schema input.
type SchemaPayload struct {
	Kind string `json:"kind"`
	DDL  string `json:"ddl,omitempty"`
}

func main() {
	fmt.Println("=== Translation REST API Example ===")

	ddl := "CREATE TABLE users (id INT64, name STRING);"

	// Translate a query with schema-aware validation.
	resp := post("/translate", TranslateRequest{
		Query:  "SELECT name FROM users WHERE INSTR(name, 'a') > 0",
		Schema: &SchemaPayload{Kind: "ddl", DDL: ddl},
	})
	fmt.Printf("Translate response: %s\n", resp)

	// Validate without translating.
	resp = post("/validate", TranslateRequest{
		Query:  "SELECT missing FROM users",
		Schema: &SchemaPayload{Kind: "ddl", DDL: ddl},
	})
	fmt.Printf("Validate response: %s\n", resp)

	fmt.Println("=== Example Complete ===")
}

func post(path string, body any) string {
	raw, err := json.Marshal(body)
	if err != nil {
		log.Fatalf("Failed to marshal request: %v", err)
	}
	resp, err := http.Post(baseURL+path, "application/json", bytes.NewReader(raw))
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("Failed to read response: %v", err)
	}
	return string(out)
}
