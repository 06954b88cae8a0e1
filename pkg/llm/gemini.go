package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel is the generation model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// GeminiGenerator implements Generator over the Gemini API. Credentials are
// resolved by the genai client (GEMINI_API_KEY / GOOGLE_API_KEY or
// application default credentials for the Vertex backend).
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a generator for the given model name. An empty
// model selects DefaultModel.
func NewGeminiGenerator(ctx context.Context, model string) (*GeminiGenerator, error) {
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

// Model returns the configured model name.
func (g *GeminiGenerator) Model() string { return g.model }

// Generate implements Generator.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temperature),
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}
