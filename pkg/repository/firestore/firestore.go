package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/memoraid/memoraid/pkg/domain/interfaces"
)

// Collection names without prefix
const (
	CollectionMemories     = "memories"
	CollectionContributors = "memory_contributors"
	CollectionQuestions    = "questions"
	CollectionQuizAttempts = "quiz_attempts"
)

type Firestore struct {
	client      *firestore.Client
	memory      *memoryRepository
	contributor *contributorRepository
	question    *questionRepository
	quizAttempt *quizAttemptRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.memory.collectionPrefix = prefix
		f.contributor.collectionPrefix = prefix
		f.question.collectionPrefix = prefix
		f.quizAttempt.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:      client,
		memory:      newMemoryRepository(client),
		contributor: newContributorRepository(client),
		question:    newQuestionRepository(client),
		quizAttempt: newQuizAttemptRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Memory() interfaces.MemoryRepository {
	return f.memory
}

func (f *Firestore) Contributor() interfaces.ContributorRepository {
	return f.contributor
}

func (f *Firestore) Question() interfaces.QuestionRepository {
	return f.question
}

func (f *Firestore) QuizAttempt() interfaces.QuizAttemptRepository {
	return f.quizAttempt
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

// CollectionName applies the optional prefix to a collection name
func CollectionName(prefix, name string) string {
	if prefix != "" {
		return prefix + "_" + name
	}
	return name
}
