// Package llm provides the text generation backends behind the quiz
// generator. Every backend takes the model name per call so the caller can
// walk a list of candidate models.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/domain"

	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

const ollamaTimeout = 120 * time.Second

// NewTextGenerator builds the backend selected by cfg.Backend.
func NewTextGenerator(ctx context.Context, cfg config.LLMConfig) (domain.TextGenerator, error) {
	defaultModel := cfg.PreferredModel
	if defaultModel == "" && len(cfg.CandidateModels) > 0 {
		defaultModel = cfg.CandidateModels[0]
	}

	switch cfg.Backend {
	case config.BackendGoogleAI:
		model, err := googleai.New(ctx,
			googleai.WithAPIKey(cfg.APIKey),
			googleai.WithDefaultModel(defaultModel),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create googleai client: %w", err)
		}
		return NewLangChainGenerator(model, cfg.Temperature), nil

	case config.BackendGenAI:
		return NewGenAIGenerator(ctx, cfg.APIKey, cfg.Temperature)

	case config.BackendOllama:
		model, err := ollama.New(
			ollama.WithServerURL(cfg.OllamaServerURL),
			ollama.WithModel(defaultModel),
			ollama.WithHTTPClient(&http.Client{Timeout: ollamaTimeout}),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
		return NewLangChainGenerator(model, cfg.Temperature), nil

	case config.BackendOpenAI:
		model, err := openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(defaultModel),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai client: %w", err)
		}
		return NewLangChainGenerator(model, cfg.Temperature), nil

	default:
		return nil, fmt.Errorf("unsupported llm backend %q", cfg.Backend)
	}
}
