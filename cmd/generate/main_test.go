package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	results map[string]*dto.QuizResponse
	calls   []string
}

func (f *fakeService) GenerateQuiz(ctx context.Context, url string) (*dto.QuizResponse, error) {
	f.calls = append(f.calls, url)
	if quiz, ok := f.results[url]; ok {
		return quiz, nil
	}
	return nil, domain.NewFetchError("Failed to fetch page: HTTP 404", nil)
}

func (f *fakeService) ScrapeArticle(ctx context.Context, url string) *dto.ScrapeResponse {
	return nil
}

func (f *fakeService) ListQuizzes(ctx context.Context) (*dto.HistoryResponse, error) {
	return nil, nil
}

func (f *fakeService) GetQuiz(ctx context.Context, id int64) (*dto.QuizResponse, error) {
	return nil, nil
}

func (f *fakeService) PingLLM(ctx context.Context) *dto.LLMTestResponse {
	return nil
}

type fakeRepo struct {
	domain.QuizRepository
	stored map[string]*domain.Quiz
}

func (f *fakeRepo) GetByURL(ctx context.Context, url string) (*domain.Quiz, error) {
	return f.stored[url], nil
}

const (
	goURL   = "https://en.wikipedia.org/wiki/Go"
	rustURL = "https://en.wikipedia.org/wiki/Rust"
	badURL  = "https://en.wikipedia.org/wiki/Missing"
)

func newRunner(out *bytes.Buffer, keepGoing bool) (*runner, *fakeService) {
	svc := &fakeService{results: map[string]*dto.QuizResponse{
		goURL:   {ID: 1, URL: goURL, Title: "Go"},
		rustURL: {ID: 2, URL: rustURL, Title: "Rust"},
	}}
	repo := &fakeRepo{stored: map[string]*domain.Quiz{goURL: {ID: 1, URL: goURL}}}
	return &runner{service: svc, repo: repo, out: out, keepGoing: keepGoing}, svc
}

func TestRunner_PrintsEachQuiz(t *testing.T) {
	var out bytes.Buffer
	r, svc := newRunner(&out, false)

	require.NoError(t, r.run(context.Background(), []string{goURL, " " + rustURL + " "}))

	assert.Equal(t, []string{goURL, rustURL}, svc.calls)
	decoder := json.NewDecoder(&out)
	var titles []string
	for decoder.More() {
		var quiz dto.QuizResponse
		require.NoError(t, decoder.Decode(&quiz))
		titles = append(titles, quiz.Title)
	}
	assert.Equal(t, []string{"Go", "Rust"}, titles)
}

func TestRunner_StopsOnFirstFailure(t *testing.T) {
	var out bytes.Buffer
	r, svc := newRunner(&out, false)

	err := r.run(context.Background(), []string{badURL, goURL})

	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.CodeFetch))
	assert.Equal(t, []string{badURL}, svc.calls)
	assert.Zero(t, out.Len())
}

func TestRunner_KeepGoing(t *testing.T) {
	var out bytes.Buffer
	r, svc := newRunner(&out, true)

	err := r.run(context.Background(), []string{badURL, goURL})

	require.Error(t, err)
	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, []string{badURL, goURL}, svc.calls)
	assert.Contains(t, out.String(), `"title": "Go"`)
}
