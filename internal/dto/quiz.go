package dto

// URLRequest is the body of POST /api/generate and POST /api/scrape
// @Description Wikipedia article to process
type URLRequest struct {
	URL string `json:"url" example:"https://en.wikipedia.org/wiki/Alan_Turing"`
}

// QuestionResponse is one multiple-choice question
type QuestionResponse struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Difficulty  *string  `json:"difficulty" enums:"easy,medium,hard"`
	Explanation string   `json:"explanation"`
}

// QuizResponse is a stored quiz with its study summary
// @Description Quiz generated from a Wikipedia article
type QuizResponse struct {
	ID            int64              `json:"id"`
	URL           string             `json:"url"`
	Title         string             `json:"title"`
	Summary       string             `json:"summary"`
	KeyEntities   map[string]any     `json:"key_entities"`
	Sections      []string           `json:"sections"`
	Quiz          []QuestionResponse `json:"quiz"`
	RelatedTopics []string           `json:"related_topics"`
}

// HistoryItem is one row of the quiz history
type HistoryItem struct {
	ID        int64  `json:"id"`
	URL       string `json:"url"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at" example:"2025-01-02T03:04:05.123456Z"`
}

// HistoryResponse lists stored quizzes, newest first
type HistoryResponse struct {
	Items []HistoryItem `json:"items"`
}

// ScrapeResponse reports what the scraper extracted without calling a model
type ScrapeResponse struct {
	OK         bool   `json:"ok"`
	Title      string `json:"title,omitempty"`
	SummaryLen *int   `json:"summary_len,omitempty"`
	TextLen    *int   `json:"text_len,omitempty"`
	Error      string `json:"error,omitempty"`
}

// LLMTestResponse reports whether any candidate model answers
type LLMTestResponse struct {
	OK      bool   `json:"ok"`
	Model   string `json:"model,omitempty"`
	Content string `json:"content,omitempty"`
	Error   string `json:"error,omitempty"`
}

// HealthResponse is returned by GET /api/health
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Code    string                 `json:"code" example:"FETCH_ERROR"`
	Message string                 `json:"message" example:"Forbidden (403) from Wikipedia"`
	Status  int                    `json:"status" example:"400"`
	Detail  string                 `json:"detail" example:"Forbidden (403) from Wikipedia"`
	Details map[string]interface{} `json:"details,omitempty"`
}
