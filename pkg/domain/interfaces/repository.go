package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Memory() MemoryRepository
	Contributor() ContributorRepository
	Question() QuestionRepository
	QuizAttempt() QuizAttemptRepository

	Close() error
}
