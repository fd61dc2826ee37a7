package usecase

import (
	"github.com/memoraid/memoraid/pkg/domain/interfaces"
)

const (
	// DefaultMaxConcurrentGenerations bounds in-flight generation calls per process
	DefaultMaxConcurrentGenerations = 4

	// DefaultDailyLimit is the number of daily practice questions
	DefaultDailyLimit = 5

	// MaxDailyLimit caps the number of daily practice questions per request
	MaxDailyLimit = 50
)

type UseCases struct {
	repo           interfaces.Repository
	drafter        QuestionDrafter
	storage        interfaces.ObjectStorage
	notifier       interfaces.Notifier
	maxConcurrency int64
	dailyLimit     int

	Memory      *MemoryUseCase
	Contributor *ContributorUseCase
	Question    *QuestionUseCase
	Quiz        *QuizUseCase
	Auth        AuthUseCaseInterface
}

type Option func(*UseCases)

// WithDrafter sets the question drafter used by the generation pipeline
func WithDrafter(drafter QuestionDrafter) Option {
	return func(uc *UseCases) {
		uc.drafter = drafter
	}
}

// WithStorage sets the object storage for photo uploads
func WithStorage(storage interfaces.ObjectStorage) Option {
	return func(uc *UseCases) {
		uc.storage = storage
	}
}

// WithNotifier sets the caregiver notifier
func WithNotifier(notifier interfaces.Notifier) Option {
	return func(uc *UseCases) {
		uc.notifier = notifier
	}
}

// WithMaxConcurrentGenerations bounds concurrent generation calls
func WithMaxConcurrentGenerations(n int64) Option {
	return func(uc *UseCases) {
		if n > 0 {
			uc.maxConcurrency = n
		}
	}
}

// WithDailyLimit sets the default number of daily practice questions
func WithDailyLimit(n int) Option {
	return func(uc *UseCases) {
		if n > 0 {
			uc.dailyLimit = n
		}
	}
}

func WithAuth(auth AuthUseCaseInterface) Option {
	return func(uc *UseCases) {
		uc.Auth = auth
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:           repo,
		maxConcurrency: DefaultMaxConcurrentGenerations,
		dailyLimit:     DefaultDailyLimit,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Question = NewQuestionUseCase(repo, uc.drafter, uc.dailyLimit)
	uc.Contributor = NewContributorUseCase(repo)
	uc.Memory = NewMemoryUseCase(repo, uc.Question,
		WithMemoryStorage(uc.storage),
		WithMemoryNotifier(uc.notifier),
		WithGenerationLimit(uc.maxConcurrency),
	)
	uc.Quiz = NewQuizUseCase(repo, uc.notifier)

	return uc
}
