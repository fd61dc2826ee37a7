package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/memoraid/memoraid/pkg/domain/model"
)

type quizAttemptRepository struct {
	mu       sync.RWMutex
	attempts map[model.QuizAttemptID]*model.QuizAttempt
}

func newQuizAttemptRepository() *quizAttemptRepository {
	return &quizAttemptRepository{
		attempts: make(map[model.QuizAttemptID]*model.QuizAttempt),
	}
}

func (r *quizAttemptRepository) Create(ctx context.Context, attempt *model.QuizAttempt) (*model.QuizAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := *attempt
	if created.ID == "" {
		created.ID = model.NewQuizAttemptID()
	}
	if _, exists := r.attempts[created.ID]; exists {
		return nil, goerr.New("quiz attempt already exists", goerr.V("quiz_attempt_id", created.ID))
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.attempts[created.ID] = &created
	result := created
	return &result, nil
}

func (r *quizAttemptRepository) ListByPatient(ctx context.Context, patientID string) ([]*model.QuizAttempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	attempts := make([]*model.QuizAttempt, 0)
	for _, a := range r.attempts {
		if a.PatientID == patientID {
			copied := *a
			attempts = append(attempts, &copied)
		}
	}

	sort.SliceStable(attempts, func(i, j int) bool {
		if attempts[i].CreatedAt.Equal(attempts[j].CreatedAt) {
			return attempts[i].ID < attempts[j].ID
		}
		return attempts[i].CreatedAt.After(attempts[j].CreatedAt)
	})

	return attempts, nil
}
