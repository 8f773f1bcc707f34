package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// Queries use "?" placeholders and go through Rebind, so the same text runs
// on Postgres ($n) and SQLite.
const (
	quizColumns = `id, url, title, summary, key_entities, sections, related_topics, raw_html, created_at`

	deleteQuestionsByURLQuery = `DELETE FROM questions WHERE quiz_id IN (SELECT id FROM quizzes WHERE url = ?)`
	deleteQuizByURLQuery      = `DELETE FROM quizzes WHERE url = ?`

	insertQuizQuery = `INSERT INTO quizzes (url, title, summary, key_entities, sections, related_topics, raw_html, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`

	insertQuestionQuery = `INSERT INTO questions (quiz_id, position, prompt, options, answer, difficulty, explanation)
VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`

	selectQuizByIDQuery  = `SELECT ` + quizColumns + ` FROM quizzes WHERE id = ?`
	selectQuizByURLQuery = `SELECT ` + quizColumns + ` FROM quizzes WHERE url = ?`

	selectQuestionsQuery = `SELECT id, quiz_id, position, prompt, options, answer, difficulty, explanation
FROM questions WHERE quiz_id = ? ORDER BY position, id`

	listQuizzesQuery = `SELECT id, url, title, created_at FROM quizzes ORDER BY created_at DESC, id DESC`
)

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx.DB
type QuizDatabaseAdapter struct {
	db        *sqlx.DB
	txManager domain.TransactionManager
}

func NewQuizDatabaseAdapter(db *sqlx.DB, txManager domain.TransactionManager) domain.QuizRepository {
	return &QuizDatabaseAdapter{db: db, txManager: txManager}
}

// ReplaceByURL deletes whatever is stored for quiz.URL and inserts quiz in
// the same transaction. On error the previous record is left untouched.
func (a *QuizDatabaseAdapter) ReplaceByURL(ctx context.Context, quiz *domain.Quiz) error {
	if quiz == nil {
		return fmt.Errorf("cannot save nil quiz")
	}
	if quiz.CreatedAt.IsZero() {
		quiz.CreatedAt = time.Now().UTC()
	}

	return a.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		exec := GetExecutor(ctx, a.db)

		if _, err := exec.ExecContext(ctx, exec.Rebind(deleteQuestionsByURLQuery), quiz.URL); err != nil {
			return fmt.Errorf("failed to delete previous questions for %s: %w", quiz.URL, err)
		}
		if _, err := exec.ExecContext(ctx, exec.Rebind(deleteQuizByURLQuery), quiz.URL); err != nil {
			return fmt.Errorf("failed to delete previous quiz for %s: %w", quiz.URL, err)
		}

		row := toModelQuiz(quiz)
		var quizID int64
		err := exec.GetContext(ctx, &quizID, exec.Rebind(insertQuizQuery),
			row.URL, row.Title, row.Summary, row.KeyEntities, row.Sections, row.RelatedTopics, row.RawHTML, row.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert quiz: %w", err)
		}

		for _, q := range quiz.Questions {
			qrow := toModelQuestion(quizID, q)
			var questionID int64
			err := exec.GetContext(ctx, &questionID, exec.Rebind(insertQuestionQuery),
				qrow.QuizID, qrow.Position, qrow.Prompt, qrow.Options, qrow.Answer, qrow.Difficulty, qrow.Explanation)
			if err != nil {
				return fmt.Errorf("failed to insert question %d: %w", q.Position, err)
			}
			q.ID = questionID
			q.QuizID = quizID
		}

		quiz.ID = quizID
		return nil
	})
}

// GetByID implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetByID(ctx context.Context, id int64) (*domain.Quiz, error) {
	return a.getOne(ctx, selectQuizByIDQuery, id)
}

// GetByURL implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetByURL(ctx context.Context, url string) (*domain.Quiz, error) {
	return a.getOne(ctx, selectQuizByURLQuery, url)
}

func (a *QuizDatabaseAdapter) getOne(ctx context.Context, query string, arg any) (*domain.Quiz, error) {
	exec := GetExecutor(ctx, a.db)

	var row models.Quiz
	if err := exec.GetContext(ctx, &row, exec.Rebind(query), arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz %v: %w", arg, err)
	}

	var questions []models.Question
	if err := exec.SelectContext(ctx, &questions, exec.Rebind(selectQuestionsQuery), row.ID); err != nil {
		return nil, fmt.Errorf("failed to get questions for quiz %d: %w", row.ID, err)
	}

	return toDomainQuiz(&row, questions), nil
}

// List implements domain.QuizRepository
func (a *QuizDatabaseAdapter) List(ctx context.Context) ([]*domain.QuizSummary, error) {
	exec := GetExecutor(ctx, a.db)

	var rows []models.QuizSummary
	if err := exec.SelectContext(ctx, &rows, listQuizzesQuery); err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	out := make([]*domain.QuizSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, &domain.QuizSummary{
			ID:        r.ID,
			URL:       r.URL,
			Title:     r.Title,
			CreatedAt: r.CreatedAt,
		})
	}
	return out, nil
}
