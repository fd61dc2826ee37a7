package interfaces

import (
	"context"

	"github.com/memoraid/memoraid/pkg/domain/model"
)

// QuestionRepository defines the interface for Question data persistence
type QuestionRepository interface {
	// CreateBatch inserts all questions atomically: either every question is
	// stored or none is. CreatedAt is assigned by the repository.
	CreateBatch(ctx context.Context, questions []*model.Question) ([]*model.Question, error)

	// ListByMemory retrieves questions of a memory ordered by difficulty, then CreatedAt
	ListByMemory(ctx context.Context, memoryID model.MemoryID) ([]*model.Question, error)

	// ListByPatient retrieves up to limit questions of a patient, newest first.
	// A limit of 0 or less returns all questions.
	ListByPatient(ctx context.Context, patientID string, limit int) ([]*model.Question, error)

	// DeleteByMemory deletes every question of a memory and returns the count
	DeleteByMemory(ctx context.Context, memoryID model.MemoryID) (int, error)
}
