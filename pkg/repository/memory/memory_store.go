package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/memoraid/memoraid/pkg/domain/model"
)

type memoryRepository struct {
	mu       sync.RWMutex
	memories map[model.MemoryID]*model.Memory
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		memories: make(map[model.MemoryID]*model.Memory),
	}
}

func copyMemory(m *model.Memory) *model.Memory {
	copied := *m
	return &copied
}

func (r *memoryRepository) Create(ctx context.Context, mem *model.Memory) (*model.Memory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyMemory(mem)
	if created.ID == "" {
		created.ID = model.NewMemoryID()
	}
	if _, exists := r.memories[created.ID]; exists {
		return nil, goerr.New("memory already exists", goerr.V(model.MemoryIDKey, created.ID))
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.memories[created.ID] = created
	return copyMemory(created), nil
}

func (r *memoryRepository) Get(ctx context.Context, memoryID model.MemoryID) (*model.Memory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mem, exists := r.memories[memoryID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "memory not found", goerr.V(model.MemoryIDKey, memoryID))
	}

	return copyMemory(mem), nil
}

func (r *memoryRepository) ListByPatient(ctx context.Context, patientID string) ([]*model.Memory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	memories := make([]*model.Memory, 0)
	for _, mem := range r.memories {
		if mem.PatientID == patientID {
			memories = append(memories, copyMemory(mem))
		}
	}

	sort.SliceStable(memories, func(i, j int) bool {
		if memories[i].CreatedAt.Equal(memories[j].CreatedAt) {
			return memories[i].ID < memories[j].ID
		}
		return memories[i].CreatedAt.After(memories[j].CreatedAt)
	})

	return memories, nil
}

func (r *memoryRepository) Delete(ctx context.Context, memoryID model.MemoryID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.memories[memoryID]; !exists {
		return goerr.Wrap(ErrNotFound, "memory not found", goerr.V(model.MemoryIDKey, memoryID))
	}

	delete(r.memories, memoryID)
	return nil
}
