package usecase_test

import (
	"context"
	"errors"
	"sync"

	"github.com/memoraid/memoraid/pkg/domain/interfaces"
	"github.com/memoraid/memoraid/pkg/domain/model"
	"github.com/memoraid/memoraid/pkg/repository/memory"
)

// mockTextGenerator is a mock quiz.TextGenerator for testing
type mockTextGenerator struct {
	mu         sync.Mutex
	generateFn func(ctx context.Context, prompt string) (string, error)
	prompts    []string
}

func (m *mockTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.generateFn != nil {
		return m.generateFn(ctx, prompt)
	}
	return "", errors.New("not implemented")
}

func (m *mockTextGenerator) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// mockNotifier records notifications
type mockNotifier struct {
	mu       sync.Mutex
	attempts []*model.QuizAttempt
	failures []error
	done     chan struct{}
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{done: make(chan struct{}, 16)}
}

func (m *mockNotifier) NotifyQuizAttempt(ctx context.Context, memory *model.Memory, attempt *model.QuizAttempt) error {
	m.mu.Lock()
	m.attempts = append(m.attempts, attempt)
	m.mu.Unlock()
	m.done <- struct{}{}
	return nil
}

func (m *mockNotifier) NotifyGenerationFailure(ctx context.Context, memory *model.Memory, cause error) error {
	m.mu.Lock()
	m.failures = append(m.failures, cause)
	m.mu.Unlock()
	m.done <- struct{}{}
	return nil
}

// failingQuestionRepo fails every batch insert
type failingQuestionRepo struct {
	interfaces.QuestionRepository
}

func (r *failingQuestionRepo) CreateBatch(ctx context.Context, questions []*model.Question) ([]*model.Question, error) {
	return nil, errors.New("datastore unavailable")
}

// failingQuestionsRepository is an in-memory repository whose question
// inserts fail
type failingQuestionsRepository struct {
	base *memory.Memory
}

func newFailingQuestionsRepository() *failingQuestionsRepository {
	return &failingQuestionsRepository{base: memory.New()}
}

func (r *failingQuestionsRepository) Memory() interfaces.MemoryRepository {
	return r.base.Memory()
}

func (r *failingQuestionsRepository) Contributor() interfaces.ContributorRepository {
	return r.base.Contributor()
}

func (r *failingQuestionsRepository) Question() interfaces.QuestionRepository {
	return &failingQuestionRepo{QuestionRepository: r.base.Question()}
}

func (r *failingQuestionsRepository) QuizAttempt() interfaces.QuizAttemptRepository {
	return r.base.QuizAttempt()
}

func (r *failingQuestionsRepository) Close() error {
	return nil
}

var _ interfaces.Repository = &failingQuestionsRepository{}
