package domain

import (
	"strings"
	"time"
)

// Limits applied when a model payload is turned into stored questions.
const (
	MaxQuestions        = 10
	MaxOptions          = 4
	EntityPeople        = "people"
	EntityOrganizations = "organizations"
	EntityLocations     = "locations"
)

// Difficulty of a generated question. The zero value means "not set".
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty lower-cases s and returns it when it is a known level.
// Anything else yields the unset difficulty.
func ParseDifficulty(s string) Difficulty {
	switch d := Difficulty(strings.ToLower(s)); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d
	default:
		return ""
	}
}

// KeyEntities holds the people, organizations and locations named in an
// article. Keys other than the three fixed ones are kept as the model sent them.
type KeyEntities map[string]any

// NewKeyEntities returns a KeyEntities with the three fixed keys set to empty lists.
func NewKeyEntities() KeyEntities {
	return KeyEntities{
		EntityPeople:        []string{},
		EntityOrganizations: []string{},
		EntityLocations:     []string{},
	}
}

// Quiz is the stored study pack for one Wikipedia article. URL is unique.
type Quiz struct {
	ID            int64
	URL           string
	Title         string
	Summary       string
	KeyEntities   KeyEntities
	Sections      []string
	RelatedTopics []string
	RawHTML       string
	CreatedAt     time.Time
	Questions     []*Question
}

// Question belongs to exactly one Quiz and is deleted with it.
type Question struct {
	ID          int64
	QuizID      int64
	Position    int
	Prompt      string
	Options     []string
	Answer      string
	Difficulty  Difficulty
	Explanation string
}

// QuizSummary is the list view of a stored quiz.
type QuizSummary struct {
	ID        int64
	URL       string
	Title     string
	CreatedAt time.Time
}

// Article is the scraped content of a Wikipedia page.
type Article struct {
	URL     string
	Title   string
	Summary string
	Text    string
	RawHTML string
}

// Generation is the JSON object accepted from a model, and which model sent it.
type Generation struct {
	Model   string
	Payload map[string]any
}

// PingResult reports whether any candidate model answered a trivial prompt.
type PingResult struct {
	OK      bool
	Model   string
	Content string
	Error   string
}

// NewQuiz builds the record to store for url from a normalized payload,
// falling back to the scraped title and summary when the model left them empty.
func NewQuiz(article *Article, payload *QuizPayload) *Quiz {
	title := payload.Title
	if title == "" {
		title = article.Title
	}
	summary := payload.Summary
	if summary == "" {
		summary = article.Summary
	}

	questions := make([]*Question, 0, len(payload.Questions))
	for i, q := range payload.Questions {
		cp := *q
		cp.Position = i
		questions = append(questions, &cp)
	}

	return &Quiz{
		URL:           article.URL,
		Title:         title,
		Summary:       summary,
		KeyEntities:   payload.KeyEntities,
		Sections:      payload.Sections,
		RelatedTopics: payload.RelatedTopics,
		RawHTML:       article.RawHTML,
		CreatedAt:     time.Now().UTC(),
		Questions:     questions,
	}
}
