package domain

import "context"

// QuizRepository persists quizzes keyed by source URL.
type QuizRepository interface {
	// ReplaceByURL removes any quiz stored for quiz.URL together with its
	// questions and inserts quiz in its place. IDs and CreatedAt are filled in.
	ReplaceByURL(ctx context.Context, quiz *Quiz) error

	// GetByID returns the quiz with its questions in order, or nil when absent.
	GetByID(ctx context.Context, id int64) (*Quiz, error)

	// GetByURL returns the quiz stored for url, or nil when absent.
	GetByURL(ctx context.Context, url string) (*Quiz, error)

	// List returns every stored quiz, newest first.
	List(ctx context.Context) ([]*QuizSummary, error)
}

// TransactionManager runs fn inside a database transaction carried by ctx.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// PageScraper fetches a Wikipedia article and extracts its text.
type PageScraper interface {
	Scrape(ctx context.Context, url string) (*Article, error)
}

// QuizGenerationService asks a language model for a quiz payload.
type QuizGenerationService interface {
	// Generate returns the first JSON object produced by any candidate model.
	Generate(ctx context.Context, url string, articleText string) (*Generation, error)

	// Ping checks that at least one candidate model answers.
	Ping(ctx context.Context) *PingResult
}

// GenerationLock serialises generation for a single URL. Release must be
// called once the quiz has been stored or the attempt abandoned.
type GenerationLock interface {
	Acquire(ctx context.Context, url string) (release func(), err error)
}
