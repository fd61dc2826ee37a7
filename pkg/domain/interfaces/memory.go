package interfaces

import (
	"context"

	"github.com/memoraid/memoraid/pkg/domain/model"
)

// MemoryRepository defines the interface for Memory data persistence
type MemoryRepository interface {
	// Create stores a new memory. ID and CreatedAt are assigned when empty.
	Create(ctx context.Context, memory *model.Memory) (*model.Memory, error)

	// Get retrieves a memory by ID
	Get(ctx context.Context, memoryID model.MemoryID) (*model.Memory, error)

	// ListByPatient retrieves all memories of a patient, newest first
	ListByPatient(ctx context.Context, patientID string) ([]*model.Memory, error)

	// Delete deletes a memory by ID. Questions are not touched.
	Delete(ctx context.Context, memoryID model.MemoryID) error
}
