// Package app builds the quiz service graph shared by the HTTP server and
// the generate CLI.
package app

import (
	"context"
	"fmt"

	"wiki-quiz/internal/adapter"
	"wiki-quiz/internal/adapter/llm"
	"wiki-quiz/internal/adapter/quizgen"
	"wiki-quiz/internal/adapter/scraper"
	"wiki-quiz/internal/cache"
	"wiki-quiz/internal/config"
	"wiki-quiz/internal/database"
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/repository"
	"wiki-quiz/internal/service"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App holds the long-lived dependencies of a process.
type App struct {
	DB          *sqlx.DB
	Redis       *redis.Client
	Repository  domain.QuizRepository
	QuizService service.QuizService
}

// New connects to the database (migrating it when db.auto_migrate is set),
// builds the model backend and wires the quiz service. Redis is only
// dialled when generation.url_lock is enabled.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	appLogger := logger.Get()

	db, err := database.ConnectAndMigrate(cfg)
	if err != nil {
		return nil, err
	}
	appLogger.Info("Database ready", zap.String("driver", cfg.DB.Driver))

	a := &App{DB: db}

	txManager := repository.NewTransactionManagerAdapter(db)
	a.Repository = repository.NewQuizDatabaseAdapter(db, txManager)

	textGenerator, err := llm.NewTextGenerator(ctx, cfg.LLM)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create %s text generator: %w", cfg.LLM.Backend, err)
	}

	instructions, err := quizgen.LoadInstructions(cfg.LLM.PromptFile)
	if err != nil {
		a.Close()
		return nil, err
	}

	generator, err := quizgen.NewQuizGenerator(textGenerator, quizgen.Config{
		PreferredModel: cfg.LLM.PreferredModel,
		Models:         cfg.LLM.CandidateModels,
		Instructions:   instructions,
	}, appLogger)
	if err != nil {
		a.Close()
		return nil, err
	}
	appLogger.Info("Quiz generator initialized",
		zap.String("backend", cfg.LLM.Backend),
		zap.Strings("models", generator.Candidates()),
	)

	var lock domain.GenerationLock
	if cfg.Generation.URLLock {
		a.Redis, err = cache.NewRedisClient(cfg.Redis)
		if err != nil {
			a.Close()
			return nil, err
		}
		lock = adapter.NewRedisURLLock(a.Redis, cfg.Generation.LockTTL)
		appLogger.Info("Per-URL generation lock enabled", zap.Duration("ttl", cfg.Generation.LockTTL))
	}

	pageScraper := scraper.NewScraper(cfg.Scraper, nil)
	a.QuizService = service.NewQuizService(a.Repository, pageScraper, generator, lock)
	return a, nil
}

// Close releases the database pool and the Redis client.
func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logger.Get().Warn("Failed to close Redis client", zap.Error(err))
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			logger.Get().Warn("Failed to close database", zap.Error(err))
		}
	}
}
