package service

import (
	"context"

	"wiki-quiz/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) ReplaceByURL(ctx context.Context, quiz *domain.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) GetByID(ctx context.Context, id int64) (*domain.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quiz), args.Error(1)
}

func (m *MockQuizRepository) GetByURL(ctx context.Context, url string) (*domain.Quiz, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quiz), args.Error(1)
}

func (m *MockQuizRepository) List(ctx context.Context) ([]*domain.QuizSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.QuizSummary), args.Error(1)
}

type MockPageScraper struct {
	mock.Mock
}

func (m *MockPageScraper) Scrape(ctx context.Context, url string) (*domain.Article, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

type MockQuizGenerator struct {
	mock.Mock
}

func (m *MockQuizGenerator) Generate(ctx context.Context, url string, articleText string) (*domain.Generation, error) {
	args := m.Called(ctx, url, articleText)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Generation), args.Error(1)
}

func (m *MockQuizGenerator) Ping(ctx context.Context) *domain.PingResult {
	args := m.Called(ctx)
	return args.Get(0).(*domain.PingResult)
}

type MockGenerationLock struct {
	mock.Mock
	released int
}

func (m *MockGenerationLock) Acquire(ctx context.Context, url string) (func(), error) {
	args := m.Called(ctx, url)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return func() { m.released++ }, nil
}
