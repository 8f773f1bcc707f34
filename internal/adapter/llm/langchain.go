package llm

import (
	"context"
	"fmt"

	"wiki-quiz/internal/domain"

	"github.com/tmc/langchaingo/llms"
)

// LangChainGenerator adapts a langchaingo model to domain.TextGenerator.
type LangChainGenerator struct {
	model       llms.Model
	temperature float64
}

var _ domain.TextGenerator = (*LangChainGenerator)(nil)

func NewLangChainGenerator(model llms.Model, temperature float64) *LangChainGenerator {
	return &LangChainGenerator{model: model, temperature: temperature}
}

// GenerateText sends prompt as a single human message to the named model.
func (g *LangChainGenerator) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	content, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt,
		llms.WithModel(model),
		llms.WithTemperature(g.temperature),
	)
	if err != nil {
		return "", fmt.Errorf("langchain call failed: %w", err)
	}
	return content, nil
}
