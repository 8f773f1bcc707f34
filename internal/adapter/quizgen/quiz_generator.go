// Package quizgen turns article text into a quiz payload by asking a list of
// candidate models in order until one returns a JSON object.
package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"wiki-quiz/configs"
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/metrics"
	"wiki-quiz/internal/util"

	"go.uber.org/zap"
)

// DefaultModels is tried, in order, after the preferred model.
var DefaultModels = []string{
	"gemini-1.5-flash",
	"gemini-1.5-flash-002",
	"gemini-1.5-flash-8b",
	"gemini-1.5-pro",
	"gemini-1.0-pro",
	"gemini-pro",
}

const (
	pingPrompt     = "Reply with OK"
	rawExcerptLen  = 400
	pingExcerptLen = 200
)

// Config selects the models to try and the instructions placed ahead of the
// article text.
type Config struct {
	PreferredModel string
	Models         []string
	Instructions   string
}

// Failure is one candidate model's failed attempt.
type Failure struct {
	Model  string
	Reason string
}

// LLMError is returned when every candidate model failed.
type LLMError struct {
	Failures []Failure
}

func (e *LLMError) Error() string {
	lines := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		lines = append(lines, f.Model+": "+f.Reason)
	}
	return "All candidate models failed:\n" + strings.Join(lines, "\n")
}

// QuizGenerator implements domain.QuizGenerationService on top of any
// domain.TextGenerator.
type QuizGenerator struct {
	llm    domain.TextGenerator
	cfg    Config
	logger *zap.Logger
}

var _ domain.QuizGenerationService = (*QuizGenerator)(nil)

// NewQuizGenerator returns a generator. An empty cfg.Models means
// DefaultModels.
func NewQuizGenerator(llm domain.TextGenerator, cfg Config, logger *zap.Logger) (*QuizGenerator, error) {
	if llm == nil {
		return nil, fmt.Errorf("text generator cannot be nil")
	}
	if len(cfg.Models) == 0 {
		cfg.Models = DefaultModels
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizGenerator{llm: llm, cfg: cfg, logger: logger}, nil
}

// Candidates lists the models in the order they are tried: the preferred one
// first, then the configured list without it.
func (g *QuizGenerator) Candidates() []string {
	var out []string
	if g.cfg.PreferredModel != "" {
		out = append(out, g.cfg.PreferredModel)
	}
	for _, m := range g.cfg.Models {
		if m != "" && m != g.cfg.PreferredModel {
			out = append(out, m)
		}
	}
	return out
}

// BuildPrompt places the article after the instructions.
func BuildPrompt(instructions, url, articleText string) string {
	return fmt.Sprintf("%s\n\nArticle URL: %s\n\nArticle text:\n%s\n", instructions, url, articleText)
}

// StripCodeFence removes a Markdown code fence wrapped around a model reply.
// The opening line (with any language tag) is dropped, and then the closing
// line when the remainder ends with a fence.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	_, rest, found := strings.Cut(s, "\n")
	if !found {
		return ""
	}
	if strings.HasSuffix(rest, "```") {
		if i := strings.LastIndex(rest, "\n"); i >= 0 {
			rest = rest[:i]
		}
	}
	return rest
}

// ParseObject decodes a model reply that must be a single JSON object.
func ParseObject(content string) (map[string]any, error) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, fmt.Errorf("expected a JSON object, got null")
	}
	return payload, nil
}

// Generate asks each candidate model once and returns the first reply that
// parses as a JSON object. When all of them fail the error is an *LLMError
// listing every attempt.
func (g *QuizGenerator) Generate(ctx context.Context, url string, articleText string) (*domain.Generation, error) {
	prompt := BuildPrompt(g.cfg.Instructions, url, articleText)

	var failures []Failure
	for _, model := range g.Candidates() {
		g.logger.Info("Trying model", zap.String("model", model), zap.String("url", url))

		payload, outcome, err := g.tryModel(ctx, model, prompt)
		metrics.ModelAttempts.WithLabelValues(model, outcome).Inc()
		if err != nil {
			g.logger.Warn("Model attempt failed", zap.String("model", model), zap.Error(err))
			failures = append(failures, Failure{Model: model, Reason: err.Error()})
			if ctx.Err() != nil {
				break
			}
			continue
		}
		return &domain.Generation{Model: model, Payload: payload}, nil
	}

	return nil, &LLMError{Failures: failures}
}

func (g *QuizGenerator) tryModel(ctx context.Context, model, prompt string) (map[string]any, string, error) {
	reply, err := g.llm.GenerateText(ctx, model, prompt)
	if err != nil {
		return nil, "error", err
	}
	if strings.TrimSpace(reply) == "" {
		return nil, "empty", fmt.Errorf("Model %s returned empty response.", model)
	}

	content := StripCodeFence(reply)
	payload, err := ParseObject(content)
	if err != nil {
		return nil, "bad_json", fmt.Errorf("Model %s returned non-JSON or bad JSON: %v\nRaw: %s",
			model, err, util.TruncateRunes(content, rawExcerptLen))
	}
	return payload, "success", nil
}

// Ping sends a trivial prompt to each candidate until one answers.
func (g *QuizGenerator) Ping(ctx context.Context) *domain.PingResult {
	lastErr := ""
	for _, model := range g.Candidates() {
		reply, err := g.llm.GenerateText(ctx, model, pingPrompt)
		if err != nil {
			lastErr = err.Error()
			continue
		}
		if text := strings.TrimSpace(reply); text != "" {
			return &domain.PingResult{OK: true, Model: model, Content: util.TruncateRunes(text, pingExcerptLen)}
		}
	}

	if lastErr == "" {
		lastErr = "Unknown error"
	}
	return &domain.PingResult{OK: false, Error: lastErr}
}

// LoadInstructions reads the prompt file at path, or returns the built-in
// prompt when path is empty.
func LoadInstructions(path string) (string, error) {
	if path == "" {
		return configs.QuizPrompt(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read prompt file %s: %w", path, err)
	}
	return string(raw), nil
}
