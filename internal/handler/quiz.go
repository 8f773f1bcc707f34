package handler

import (
	"strconv"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/dto"
	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/middleware"
	"wiki-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// Health godoc
// @Summary Liveness check
// @Tags system
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *QuizHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Status: "ok"})
}

// LLMTest godoc
// @Summary Check that a model answers
// @Description Sends a tiny prompt to the candidate models and reports the first that replies.
// @Tags system
// @Produce json
// @Success 200 {object} dto.LLMTestResponse
// @Router /llm-test [get]
func (h *QuizHandler) LLMTest(c *fiber.Ctx) error {
	return c.JSON(h.service.PingLLM(c.UserContext()))
}

// Scrape godoc
// @Summary Scrape a Wikipedia article
// @Description Fetches and extracts an article without generating a quiz. Scrape failures are reported with ok=false.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.URLRequest true "Article URL"
// @Success 200 {object} dto.ScrapeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /scrape [post]
func (h *QuizHandler) Scrape(c *fiber.Ctx) error {
	req, ok := middleware.ValidatedURL(c)
	if !ok {
		return domain.NewInvalidInputError("Request body is required")
	}
	return c.JSON(h.service.ScrapeArticle(c.UserContext(), req.URL))
}

// Generate godoc
// @Summary Generate a quiz from a Wikipedia article
// @Description Scrapes the article, asks the model for a quiz and stores it, replacing any quiz already stored for the URL.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.URLRequest true "Article URL"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /generate [post]
func (h *QuizHandler) Generate(c *fiber.Ctx) error {
	req, ok := middleware.ValidatedURL(c)
	if !ok {
		return domain.NewInvalidInputError("Request body is required")
	}

	quiz, err := h.service.GenerateQuiz(c.UserContext(), req.URL)
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// ListQuizzes godoc
// @Summary List stored quizzes
// @Description Returns every stored quiz, newest first.
// @Tags quiz
// @Produce json
// @Success 200 {object} dto.HistoryResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /quizzes [get]
func (h *QuizHandler) ListQuizzes(c *fiber.Ctx) error {
	history, err := h.service.ListQuizzes(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(history)
}

// GetQuiz godoc
// @Summary Get a stored quiz
// @Tags quiz
// @Produce json
// @Param id path int true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	rawID := c.Params("id")
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		logger.Get().Debug("Rejected quiz id", zap.String("id", rawID))
		return domain.NewInvalidInputError("Quiz id must be an integer").WithContext("id", rawID)
	}

	quiz, err := h.service.GetQuiz(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// RegisterRoutes mounts the quiz API on router.
func (h *QuizHandler) RegisterRoutes(router fiber.Router, validator *middleware.ValidationMiddleware) {
	router.Get("/health", h.Health)
	router.Get("/llm-test", h.LLMTest)
	router.Post("/scrape", validator.ValidateURLBody(), h.Scrape)
	router.Post("/generate", validator.ValidateURLBody(), h.Generate)
	router.Get("/quizzes", h.ListQuizzes)
	router.Get("/quizzes/:id", h.GetQuiz)
}
