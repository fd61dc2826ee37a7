package memory

import (
	"github.com/memoraid/memoraid/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is an in-process implementation of interfaces.Repository used for
// development and tests
type Memory struct {
	memory      *memoryRepository
	contributor *contributorRepository
	question    *questionRepository
	quizAttempt *quizAttemptRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		memory:      newMemoryRepository(),
		contributor: newContributorRepository(),
		question:    newQuestionRepository(),
		quizAttempt: newQuizAttemptRepository(),
	}
}

func (m *Memory) Memory() interfaces.MemoryRepository {
	return m.memory
}

func (m *Memory) Contributor() interfaces.ContributorRepository {
	return m.contributor
}

func (m *Memory) Question() interfaces.QuestionRepository {
	return m.question
}

func (m *Memory) QuizAttempt() interfaces.QuizAttemptRepository {
	return m.quizAttempt
}

func (m *Memory) Close() error {
	return nil
}
