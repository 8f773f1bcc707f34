package service

import (
	"context"
	"errors"
	"time"

	"wiki-quiz/internal/adapter/scraper"
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/dto"
	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/metrics"
	"wiki-quiz/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	pingFlightKey   = "llm-ping"
	createdAtLayout = "2006-01-02T15:04:05.999999Z07:00"
)

// QuizService defines the interface for quiz-related operations
type QuizService interface {
	// GenerateQuiz scrapes url, asks the model for a quiz, replaces any quiz
	// stored for url and returns the stored result.
	GenerateQuiz(ctx context.Context, url string) (*dto.QuizResponse, error)
	// ScrapeArticle runs only the scraper. Failures are reported in the
	// response rather than as an error.
	ScrapeArticle(ctx context.Context, url string) *dto.ScrapeResponse
	ListQuizzes(ctx context.Context) (*dto.HistoryResponse, error)
	GetQuiz(ctx context.Context, id int64) (*dto.QuizResponse, error)
	PingLLM(ctx context.Context) *dto.LLMTestResponse
}

// quizService implements QuizService
type quizService struct {
	repo      domain.QuizRepository
	scraper   domain.PageScraper
	generator domain.QuizGenerationService
	lock      domain.GenerationLock
	sfGroup   singleflight.Group
}

// NewQuizService creates a new instance of quizService. lock may be nil, in
// which case concurrent generations for one URL are not coordinated and the
// last one to commit wins.
func NewQuizService(
	repo domain.QuizRepository,
	scraper domain.PageScraper,
	generator domain.QuizGenerationService,
	lock domain.GenerationLock,
) QuizService {
	return &quizService{
		repo:      repo,
		scraper:   scraper,
		generator: generator,
		lock:      lock,
	}
}

// GenerateQuiz implements QuizService
func (s *quizService) GenerateQuiz(ctx context.Context, url string) (quiz *dto.QuizResponse, err error) {
	start := time.Now()
	defer func() {
		result := "success"
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			result = string(domainErr.Code)
		} else if err != nil {
			result = string(domain.CodeInternal)
		}
		metrics.Generations.WithLabelValues(result).Inc()
		metrics.GenerationDuration.Observe(time.Since(start).Seconds())
	}()

	l := logger.Get().With(zap.String("url", url))

	if s.lock != nil {
		release, lockErr := s.lock.Acquire(ctx, url)
		if lockErr != nil {
			return nil, domain.NewInternalError("Failed to acquire generation lock", lockErr)
		}
		defer release()
	}

	article, err := s.scraper.Scrape(ctx, url)
	if err != nil {
		l.Warn("Scrape failed", zap.Error(err))
		return nil, mapScrapeError(err)
	}

	generation, err := s.generator.Generate(ctx, url, article.Text)
	if err != nil {
		l.Error("Quiz generation failed", zap.Error(err))
		return nil, domain.NewLLMError(err.Error())
	}
	l.Info("Model produced quiz payload", zap.String("model", generation.Model))

	payload := domain.NormalizePayload(generation.Payload)
	record := domain.NewQuiz(article, payload)

	if err := s.repo.ReplaceByURL(ctx, record); err != nil {
		l.Error("Failed to store quiz", zap.Error(err))
		return nil, domain.NewInternalError("Failed to store quiz", err)
	}

	stored, err := s.repo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to reload quiz", err)
	}
	if stored == nil {
		return nil, domain.NewInternalError("Stored quiz disappeared before it could be returned", nil)
	}

	l.Info("Quiz stored", zap.Int64("quiz_id", stored.ID), zap.Int("questions", len(stored.Questions)))
	return toQuizResponse(stored), nil
}

func mapScrapeError(err error) error {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	if errors.Is(err, scraper.ErrInvalidURL) {
		return domain.NewValidationError("Only Wikipedia article URLs are allowed (HTML scraping only).")
	}
	return domain.NewFetchError(err.Error(), err)
}

// ScrapeArticle implements QuizService
func (s *quizService) ScrapeArticle(ctx context.Context, url string) *dto.ScrapeResponse {
	article, err := s.scraper.Scrape(ctx, url)
	if err != nil {
		return &dto.ScrapeResponse{OK: false, Error: mapScrapeError(err).Error()}
	}

	summaryLen := util.RuneLen(article.Summary)
	textLen := util.RuneLen(article.Text)
	return &dto.ScrapeResponse{
		OK:         true,
		Title:      article.Title,
		SummaryLen: &summaryLen,
		TextLen:    &textLen,
	}
}

// ListQuizzes implements QuizService
func (s *quizService) ListQuizzes(ctx context.Context) (*dto.HistoryResponse, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list quizzes", err)
	}

	resp := &dto.HistoryResponse{Items: make([]dto.HistoryItem, 0, len(rows))}
	for _, r := range rows {
		resp.Items = append(resp.Items, dto.HistoryItem{
			ID:        r.ID,
			URL:       r.URL,
			Title:     r.Title,
			CreatedAt: r.CreatedAt.UTC().Format(createdAtLayout),
		})
	}
	return resp, nil
}

// GetQuiz implements QuizService
func (s *quizService) GetQuiz(ctx context.Context, id int64) (*dto.QuizResponse, error) {
	quiz, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(id)
	}
	return toQuizResponse(quiz), nil
}

// PingLLM implements QuizService. Concurrent callers share one round of
// model calls.
func (s *quizService) PingLLM(ctx context.Context) *dto.LLMTestResponse {
	v, _, _ := s.sfGroup.Do(pingFlightKey, func() (interface{}, error) {
		return s.generator.Ping(ctx), nil
	})
	res := v.(*domain.PingResult)
	return &dto.LLMTestResponse{
		OK:      res.OK,
		Model:   res.Model,
		Content: res.Content,
		Error:   res.Error,
	}
}

func toQuizResponse(q *domain.Quiz) *dto.QuizResponse {
	keyEntities := map[string]any(q.KeyEntities)
	if keyEntities == nil {
		keyEntities = map[string]any(domain.NewKeyEntities())
	}

	resp := &dto.QuizResponse{
		ID:            q.ID,
		URL:           q.URL,
		Title:         q.Title,
		Summary:       q.Summary,
		KeyEntities:   keyEntities,
		Sections:      nonNil(q.Sections),
		Quiz:          make([]dto.QuestionResponse, 0, len(q.Questions)),
		RelatedTopics: nonNil(q.RelatedTopics),
	}
	for _, question := range q.Questions {
		var difficulty *string
		if question.Difficulty != "" {
			d := string(question.Difficulty)
			difficulty = &d
		}
		resp.Quiz = append(resp.Quiz, dto.QuestionResponse{
			Question:    question.Prompt,
			Options:     nonNil(question.Options),
			Answer:      question.Answer,
			Difficulty:  difficulty,
			Explanation: question.Explanation,
		})
	}
	return resp
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
