package repository

import (
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/repository/models"
	"wiki-quiz/internal/util"
)

func toModelQuiz(q *domain.Quiz) *models.Quiz {
	return &models.Quiz{
		ID:            q.ID,
		URL:           q.URL,
		Title:         q.Title,
		Summary:       q.Summary,
		KeyEntities:   models.JSONObject(q.KeyEntities),
		Sections:      models.StringSlice(q.Sections),
		RelatedTopics: models.StringSlice(q.RelatedTopics),
		RawHTML:       q.RawHTML,
		CreatedAt:     q.CreatedAt,
	}
}

func toModelQuestion(quizID int64, q *domain.Question) *models.Question {
	return &models.Question{
		ID:          q.ID,
		QuizID:      quizID,
		Position:    q.Position,
		Prompt:      q.Prompt,
		Options:     models.StringSlice(q.Options),
		Answer:      q.Answer,
		Difficulty:  util.StringToNullString(string(q.Difficulty)),
		Explanation: q.Explanation,
	}
}

func toDomainQuiz(row *models.Quiz, questions []models.Question) *domain.Quiz {
	quiz := &domain.Quiz{
		ID:            row.ID,
		URL:           row.URL,
		Title:         row.Title,
		Summary:       row.Summary,
		KeyEntities:   domain.KeyEntities(row.KeyEntities),
		Sections:      []string(row.Sections),
		RelatedTopics: []string(row.RelatedTopics),
		RawHTML:       row.RawHTML,
		CreatedAt:     row.CreatedAt,
		Questions:     make([]*domain.Question, 0, len(questions)),
	}
	for _, q := range questions {
		quiz.Questions = append(quiz.Questions, &domain.Question{
			ID:          q.ID,
			QuizID:      q.QuizID,
			Position:    q.Position,
			Prompt:      q.Prompt,
			Options:     []string(q.Options),
			Answer:      q.Answer,
			Difficulty:  domain.Difficulty(util.NullStringToString(q.Difficulty)),
			Explanation: q.Explanation,
		})
	}
	return quiz
}
