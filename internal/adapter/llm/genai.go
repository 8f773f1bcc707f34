package llm

import (
	"context"
	"errors"
	"fmt"

	"wiki-quiz/internal/domain"

	"google.golang.org/genai"
)

// GenAIGenerator calls the Gemini API through the official Go SDK.
type GenAIGenerator struct {
	client      *genai.Client
	temperature float64
}

var _ domain.TextGenerator = (*GenAIGenerator)(nil)

func NewGenAIGenerator(ctx context.Context, apiKey string, temperature float64) (*GenAIGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GenAIGenerator{client: client, temperature: temperature}, nil
}

func (g *GenAIGenerator) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{}
	if g.temperature > 0 {
		temp := float32(g.temperature)
		config.Temperature = &temp
	}

	result, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		var apiErr *genai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("gemini API error (HTTP %d): %w", apiErr.Code, err)
		}
		return "", fmt.Errorf("gemini call failed: %w", err)
	}
	return result.Text(), nil
}
