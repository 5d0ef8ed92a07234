package service

import (
	"context"
	"sync"
	"time"

	"auralearn/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of domain.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

// fakeGenerator is a QuizGenerator whose behavior the test controls.
type fakeGenerator struct {
	mu       sync.Mutex
	calls    int
	generate func(ctx context.Context, file *domain.SourceFile) (*domain.GeneratedQuiz, error)
}

func (g *fakeGenerator) GenerateQuiz(ctx context.Context, file *domain.SourceFile) (*domain.GeneratedQuiz, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()
	return g.generate(ctx, file)
}

func (g *fakeGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// memoryCache is an in-process domain.Cache for decorator tests.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]string
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]string)}
}

func (c *memoryCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.entries[key]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return value, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	c.sets++
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *memoryCache) Ping(ctx context.Context) error {
	return nil
}

func sampleQuiz() *domain.GeneratedQuiz {
	return &domain.GeneratedQuiz{
		MultipleChoice: []domain.MultipleChoiceItem{
			{
				Question:     "What is the capital of France?",
				Options:      []string{"London", "Paris", "Berlin", "Madrid"},
				CorrectIndex: 1,
			},
		},
		ShortAnswers: []string{"Explain the process of photosynthesis."},
		Summary:      "A short study summary.",
	}
}
